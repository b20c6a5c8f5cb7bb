package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// CustomerRepository provides access to customer master data
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer. A duplicate GST number surfaces as
// gorm.ErrDuplicatedKey.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Create(customer).Error
	return errors.Wrap(err, "failed to create customer")
}

// GetByID gets a customer by id
func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get customer")
	}
	return &customer, nil
}

// List returns all customers ordered by name
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	return customers, nil
}

// Update saves changes to a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Save(customer).Error
	return errors.Wrap(err, "failed to update customer")
}

// Delete removes a customer; the database restricts this while sales orders
// reference it
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete customer")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete customer")
	}
	return nil
}

// VendorRepository provides access to vendor master data
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create inserts a vendor. A duplicate GST number surfaces as
// gorm.ErrDuplicatedKey.
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	err := r.db.WithContext(ctx).Create(vendor).Error
	return errors.Wrap(err, "failed to create vendor")
}

// GetByID gets a vendor by id
func (r *VendorRepository) GetByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).First(&vendor, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vendor")
	}
	return &vendor, nil
}

// List returns all vendors ordered by name
func (r *VendorRepository) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vendors).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}
	return vendors, nil
}

// Update saves changes to a vendor
func (r *VendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	err := r.db.WithContext(ctx).Save(vendor).Error
	return errors.Wrap(err, "failed to update vendor")
}

// Delete removes a vendor; the database restricts this while purchase orders
// reference it
func (r *VendorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Vendor{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete vendor")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete vendor")
	}
	return nil
}
