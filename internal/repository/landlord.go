package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

const landlordsCacheKey = "landlords"

type LandlordRepository interface {
	// All returns every landlord with its properties and units nested,
	// served from cache when fresh.
	All(ctx context.Context) ([]model.Landlord, error)
	// Insert stores the landlord, then each property and unit
	// individually. Nested failures do not roll back the landlord; they
	// are reported in the returned advisory warning.
	Insert(ctx context.Context, landlord *model.Landlord) (warning string, err error)
	Stats(ctx context.Context) (*model.LandlordStats, error)
}

// Flat table rows; the nested client representation is assembled in All.
type landlordRow struct {
	LandlordID   string `json:"landlord_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type propertyRow struct {
	PropertyID string `json:"property_id"`
	LandlordID string `json:"landlord_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Zip        string `json:"zip"`
}

type unitRow struct {
	PropertyID string  `json:"property_id"`
	UnitNumber string  `json:"unit_number"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	Rent       int     `json:"rent"`
}

type landlordRepository struct {
	client *supabase.Client
}

func NewLandlordRepository(client *supabase.Client) LandlordRepository {
	return &landlordRepository{client: client}
}

func (r *landlordRepository) All(ctx context.Context) ([]model.Landlord, error) {
	if cached, ok := r.client.Cache.Get(landlordsCacheKey); ok {
		return cached.([]model.Landlord), nil
	}

	var landlords []landlordRow
	err := r.client.Select(ctx, "landlords", "select=landlord_id,name,contact_email,contact_phone", &landlords)
	if err != nil {
		return nil, fmt.Errorf("get landlords: %w", err)
	}

	var properties []propertyRow
	err = r.client.Select(ctx, "properties", "select=property_id,landlord_id,street,city,province,zip", &properties)
	if err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}

	var units []unitRow
	err = r.client.Select(ctx, "units", "select=property_id,unit_number,bedrooms,bathrooms,rent", &units)
	if err != nil {
		return nil, fmt.Errorf("get units: %w", err)
	}

	nested := assemble(landlords, properties, units)
	r.client.Cache.Put(landlordsCacheKey, nested)
	return nested, nil
}

func assemble(landlords []landlordRow, properties []propertyRow, units []unitRow) []model.Landlord {
	unitsByProperty := make(map[string][]model.Unit)
	for _, u := range units {
		unitsByProperty[u.PropertyID] = append(unitsByProperty[u.PropertyID], model.Unit{
			UnitNumber: u.UnitNumber,
			Bedrooms:   u.Bedrooms,
			Bathrooms:  u.Bathrooms,
			Rent:       u.Rent,
		})
	}

	propsByLandlord := make(map[string][]model.Property)
	for _, p := range properties {
		prop := model.Property{
			PropertyID: p.PropertyID,
			Address: model.Address{
				Street:   p.Street,
				City:     p.City,
				Province: p.Province,
				Zip:      p.Zip,
			},
			Units: unitsByProperty[p.PropertyID],
		}
		if prop.Units == nil {
			prop.Units = []model.Unit{}
		}
		propsByLandlord[p.LandlordID] = append(propsByLandlord[p.LandlordID], prop)
	}

	result := make([]model.Landlord, 0, len(landlords))
	for _, ll := range landlords {
		props := propsByLandlord[ll.LandlordID]
		if props == nil {
			props = []model.Property{}
		}
		result = append(result, model.Landlord{
			LandlordID: ll.LandlordID,
			Name:       ll.Name,
			Contact:    model.Contact{Email: ll.ContactEmail, Phone: ll.ContactPhone},
			Properties: props,
		})
	}
	return result
}

func (r *landlordRepository) Insert(ctx context.Context, landlord *model.Landlord) (string, error) {
	row := landlordRow{
		LandlordID:   landlord.LandlordID,
		Name:         landlord.Name,
		ContactEmail: landlord.Contact.Email,
		ContactPhone: landlord.Contact.Phone,
	}
	err := r.client.Insert(ctx, "landlords", row, nil)
	if err != nil {
		return "", fmt.Errorf("insert landlord: %w", err)
	}

	// Best-effort from here on: the landlord exists, nested failures are
	// collected as an advisory warning rather than rolled back.
	var failures []string
	for _, prop := range landlord.Properties {
		pRow := propertyRow{
			PropertyID: prop.PropertyID,
			LandlordID: landlord.LandlordID,
			Street:     prop.Address.Street,
			City:       prop.Address.City,
			Province:   prop.Address.Province,
			Zip:        prop.Address.Zip,
		}
		if err := r.client.Insert(ctx, "properties", pRow, nil); err != nil {
			failures = append(failures, fmt.Sprintf("property %s failed", prop.PropertyID))
			continue // units are meaningless without their property
		}

		for _, unit := range prop.Units {
			uRow := unitRow{
				PropertyID: prop.PropertyID,
				UnitNumber: unit.UnitNumber,
				Bedrooms:   unit.Bedrooms,
				Bathrooms:  unit.Bathrooms,
				Rent:       unit.Rent,
			}
			if err := r.client.Insert(ctx, "units", uRow, nil); err != nil {
				failures = append(failures, fmt.Sprintf("unit in %s failed", prop.PropertyID))
			}
		}
	}

	r.client.Cache.Invalidate(landlordsCacheKey)

	if len(failures) > 0 {
		return "landlord created but some properties/units failed: " + strings.Join(failures, "; "), nil
	}
	return "", nil
}

func (r *landlordRepository) Stats(ctx context.Context) (*model.LandlordStats, error) {
	stats := &model.LandlordStats{}

	// Counts are best-effort: a failed count reads as zero rather than
	// failing the whole stats endpoint.
	var landlords []landlordRow
	if err := r.client.Select(ctx, "landlords", "select=landlord_id", &landlords); err == nil {
		stats.Landlords = len(landlords)
	}

	var properties []propertyRow
	if err := r.client.Select(ctx, "properties", "select=property_id", &properties); err == nil {
		stats.Properties = len(properties)
	}

	var units []unitRow
	if err := r.client.Select(ctx, "units", "select=property_id", &units); err == nil {
		stats.Units = len(units)
	}

	return stats, nil
}
