// internal/service/customer/customer.go
package customer

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/dateutil"

	"go.uber.org/zap"
)

// timeNow is swapped in tests that pin derived fields to a fixed day.
var timeNow = time.Now

type CustomerService struct {
	customerRepo customer.Repository
	policyRepo   policy.Repository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo customer.Repository, policyRepo policy.Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		policyRepo:   policyRepo,
		logger:       logger,
	}
}

// Create validates and stores a new customer.
func (s *CustomerService) Create(ctx context.Context, req *customer.CreateRequest) (*customer.Detail, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, xerrors.Invalid("first name is required")
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return nil, xerrors.Invalid("last name is required")
	}

	c := &customer.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     optional(req.Email),
		Phone:     optional(req.Phone),
		Address:   optional(req.Address),
		City:      optional(req.City),
		State:     optional(req.State),
		ZipCode:   optional(req.ZipCode),
	}

	if req.DateOfBirth != "" {
		dob, err := dateutil.ParseDate(req.DateOfBirth)
		if err != nil {
			return nil, xerrors.Invalid("date of birth must be YYYY-MM-DD")
		}
		c.DateOfBirth = sql.NullTime{Time: dob, Valid: true}
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created", zap.Int64("customer_id", c.ID))

	d := c.Detail(timeNow())
	return &d, nil
}

// Get retrieves one customer.
func (s *CustomerService) Get(ctx context.Context, id int64) (*customer.Detail, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := c.Detail(timeNow())
	return &d, nil
}

// Update applies only the supplied fields to a customer.
func (s *CustomerService) Update(ctx context.Context, id int64, req *customer.UpdateRequest) (*customer.Detail, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" {
			return nil, xerrors.Invalid("first name is required")
		}
		c.FirstName = firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if lastName == "" {
			return nil, xerrors.Invalid("last name is required")
		}
		c.LastName = lastName
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			c.DateOfBirth = sql.NullTime{}
		} else {
			dob, err := dateutil.ParseDate(*req.DateOfBirth)
			if err != nil {
				return nil, xerrors.Invalid("date of birth must be YYYY-MM-DD")
			}
			c.DateOfBirth = sql.NullTime{Time: dob, Valid: true}
		}
	}
	applyOptional(&c.Email, req.Email)
	applyOptional(&c.Phone, req.Phone)
	applyOptional(&c.Address, req.Address)
	applyOptional(&c.City, req.City)
	applyOptional(&c.State, req.State)
	applyOptional(&c.ZipCode, req.ZipCode)

	if err := s.customerRepo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.Int64("customer_id", id), zap.Error(err))
		return nil, err
	}

	d := c.Detail(timeNow())
	return &d, nil
}

// Delete removes a customer together with their policies and those policies'
// claims.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

// List retrieves a page of customers matching the filter.
func (s *CustomerService) List(ctx context.Context, f customer.ListFilter) (*customer.ListResponse, error) {
	customers, pages, err := s.customerRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]customer.Detail, 0, len(customers))
	for i := range customers {
		details = append(details, customers[i].Detail(today))
	}

	return &customer.ListResponse{Customers: details, Pages: pages}, nil
}

// Policies retrieves the policies held by one customer.
func (s *CustomerService) Policies(ctx context.Context, customerID int64) ([]policy.Detail, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	policies, err := s.policyRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]policy.Detail, 0, len(policies))
	for i := range policies {
		details = append(details, policies[i].Detail(today))
	}
	return details, nil
}

func optional(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}

func applyOptional(dst *sql.NullString, v *string) {
	if v != nil {
		*dst = optional(*v)
	}
}
