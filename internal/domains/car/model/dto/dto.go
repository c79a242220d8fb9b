package dto

import (
	"mime/multipart"

	"carhive/internal/domains/car/model"
	"carhive/shared"
	gDto "carhive/shared/dto"
	gModel "carhive/shared/model"
	"carhive/shared/timezone"

	"github.com/google/uuid"
)

type CreateCarRequest struct {
	Brand       string                  `json:"brand"         validate:"required,max=100"`
	Model       string                  `json:"model"         validate:"required,max=100"`
	Year        int                     `json:"year"          validate:"required,min=1900"`
	PricePerDay float64                 `json:"price_per_day" validate:"required,gt=0"`
	Location    string                  `json:"location"      validate:"omitempty,max=100"`
	Available   *bool                   `json:"available"     validate:"omitempty"`
	Images      []*multipart.FileHeader `json:"images"        validate:"omitempty,max=3,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFiles  []multipart.File        `json:"-"`
}

func (c *CreateCarRequest) ToModel(user string, imageURLs []string) model.Car {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Car{
		ID:          uuid.NewString(),
		Brand:       c.Brand,
		Model:       c.Model,
		Year:        c.Year,
		Images:      imageURLs,
		PricePerDay: c.PricePerDay,
		Location:    c.Location,
		Available:   available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCarRequest struct {
	Brand       string                  `db:"brand"         json:"brand"         validate:"omitempty,max=100"`
	Model       string                  `db:"model"         json:"model"         validate:"omitempty,max=100"`
	Year        *int                    `db:"year"          json:"year"          validate:"omitempty,min=1900"`
	PricePerDay *float64                `db:"price_per_day" json:"price_per_day" validate:"omitempty,gt=0"`
	Location    string                  `db:"location"      json:"location"      validate:"omitempty,max=100"`
	Available   *bool                   `db:"available"     json:"available"     validate:"omitempty"`
	Images      []*multipart.FileHeader `json:"images"      validate:"omitempty,max=3,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFiles  []multipart.File        `json:"-"`
}

type CarResponse struct {
	ID          string   `json:"id"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Images      []string `json:"images"`
	PricePerDay float64  `json:"price_per_day"`
	Location    string   `json:"location"`
	Available   bool     `json:"available"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(model model.Car) {
	r.ID = model.ID
	r.Brand = model.Brand
	r.Model = model.Model
	r.Year = model.Year
	r.Images = model.Images
	r.PricePerDay = model.PricePerDay
	r.Location = model.Location
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}
