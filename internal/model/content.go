package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Content object types as named in the CMS.
const (
	TypeService     = "services"
	TypeProduct     = "products"
	TypeCaseStudy   = "case-studies"
	TypeTeamMember  = "team-members"
	TypeTestimonial = "testimonials"
)

// IsContentType reports whether t is one of the known CMS object types.
func IsContentType(t string) bool {
	switch t {
	case TypeService, TypeProduct, TypeCaseStudy, TypeTeamMember, TypeTestimonial:
		return true
	}
	return false
}

// ContentObject is a raw CMS record. Type-specific fields live in Metadata.
type ContentObject struct {
	ID         string          `json:"id" db:"id"`
	Type       string          `json:"type" db:"type"`
	Slug       string          `json:"slug" db:"slug"`
	Title      string          `json:"title" db:"title"`
	Content    string          `json:"content,omitempty" db:"content"`
	Metadata   json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	ModifiedAt time.Time       `json:"modified_at" db:"modified_at"`
}

// Image is a CMS media reference.
type Image struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url,omitempty"`
}

// Product is a purchasable catalogue item.
type Product struct {
	ID          string  `json:"id" validate:"required"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Images      []Image `json:"images,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	SKU         string  `json:"sku,omitempty"`
}

type productMetadata struct {
	ProductName   string  `json:"product_name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Images        []Image `json:"images"`
	StockQuantity *int    `json:"stock_quantity"`
	SKU           string  `json:"sku"`
}

// ProductFromObject decodes a products object into a Product.
func ProductFromObject(obj ContentObject) (Product, error) {
	var md productMetadata
	if err := decodeMetadata(obj, TypeProduct, &md); err != nil {
		return Product{}, err
	}

	name := md.ProductName
	if name == "" {
		name = obj.Title
	}

	return Product{
		ID:          obj.ID,
		Slug:        obj.Slug,
		Name:        name,
		Description: md.Description,
		Price:       md.Price,
		Images:      md.Images,
		Stock:       md.StockQuantity,
		SKU:         md.SKU,
	}, nil
}

// Service is an agency service offering.
type Service struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	FullDescription  string   `json:"full_description,omitempty"`
	Icon             *Image   `json:"icon,omitempty"`
	StartingPrice    string   `json:"starting_price,omitempty"`
	Features         []string `json:"features,omitempty"`
}

type serviceMetadata struct {
	ServiceName      string   `json:"service_name"`
	ShortDescription string   `json:"short_description"`
	FullDescription  string   `json:"full_description"`
	Icon             *Image   `json:"icon"`
	StartingPrice    string   `json:"starting_price"`
	Features         []string `json:"features"`
}

// ServiceFromObject decodes a services object into a Service.
func ServiceFromObject(obj ContentObject) (Service, error) {
	var md serviceMetadata
	if err := decodeMetadata(obj, TypeService, &md); err != nil {
		return Service{}, err
	}

	name := md.ServiceName
	if name == "" {
		name = obj.Title
	}

	return Service{
		ID:               obj.ID,
		Slug:             obj.Slug,
		Name:             name,
		ShortDescription: md.ShortDescription,
		FullDescription:  md.FullDescription,
		Icon:             md.Icon,
		StartingPrice:    md.StartingPrice,
		Features:         md.Features,
	}, nil
}

// CaseStudy is a published client project.
type CaseStudy struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	ProjectName      string   `json:"project_name"`
	ClientName       string   `json:"client_name"`
	ProjectSummary   string   `json:"project_summary"`
	Challenge        string   `json:"challenge,omitempty"`
	Solution         string   `json:"solution,omitempty"`
	Results          string   `json:"results,omitempty"`
	FeaturedImage    *Image   `json:"featured_image,omitempty"`
	Gallery          []Image  `json:"project_gallery,omitempty"`
	ProjectDuration  string   `json:"project_duration,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
}

// CaseStudyFromObject decodes a case-studies object into a CaseStudy.
func CaseStudyFromObject(obj ContentObject) (CaseStudy, error) {
	var cs CaseStudy
	if err := decodeMetadata(obj, TypeCaseStudy, &cs); err != nil {
		return CaseStudy{}, err
	}
	cs.ID = obj.ID
	cs.Slug = obj.Slug
	if cs.ProjectName == "" {
		cs.ProjectName = obj.Title
	}
	return cs, nil
}

// TeamMember is a staff bio.
type TeamMember struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	FullName      string `json:"full_name"`
	JobTitle      string `json:"job_title"`
	Bio           string `json:"bio,omitempty"`
	Photo         *Image `json:"photo,omitempty"`
	Email         string `json:"email,omitempty"`
	LinkedInURL   string `json:"linkedin_url,omitempty"`
	TwitterHandle string `json:"twitter_handle,omitempty"`
}

// TeamMemberFromObject decodes a team-members object into a TeamMember.
func TeamMemberFromObject(obj ContentObject) (TeamMember, error) {
	var tm TeamMember
	if err := decodeMetadata(obj, TypeTeamMember, &tm); err != nil {
		return TeamMember{}, err
	}
	tm.ID = obj.ID
	tm.Slug = obj.Slug
	if tm.FullName == "" {
		tm.FullName = obj.Title
	}
	return tm, nil
}

// Testimonial is a client quote.
type Testimonial struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	ClientName  string `json:"client_name"`
	Company     string `json:"client_company,omitempty"`
	Role        string `json:"client_role,omitempty"`
	Quote       string `json:"testimonial_quote"`
	ClientPhoto *Image `json:"client_photo,omitempty"`
	Rating      int    `json:"rating,omitempty"`
}

type testimonialMetadata struct {
	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company"`
	ClientRole    string `json:"client_role"`
	Quote         string `json:"testimonial_quote"`
	ClientPhoto   *Image `json:"client_photo"`
	Rating        *struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"rating"`
}

// TestimonialFromObject decodes a testimonials object into a Testimonial.
func TestimonialFromObject(obj ContentObject) (Testimonial, error) {
	var md testimonialMetadata
	if err := decodeMetadata(obj, TypeTestimonial, &md); err != nil {
		return Testimonial{}, err
	}

	t := Testimonial{
		ID:          obj.ID,
		Slug:        obj.Slug,
		ClientName:  md.ClientName,
		Company:     md.ClientCompany,
		Role:        md.ClientRole,
		Quote:       md.Quote,
		ClientPhoto: md.ClientPhoto,
	}
	if md.Rating != nil {
		// CMS select-dropdown keys are "1".."5".
		if n, err := strconv.Atoi(md.Rating.Key); err == nil {
			t.Rating = n
		}
	}
	return t, nil
}

func decodeMetadata(obj ContentObject, wantType string, dst any) error {
	if obj.Type != wantType {
		return fmt.Errorf("object %s has type %q, want %q", obj.ID, obj.Type, wantType)
	}
	if len(obj.Metadata) == 0 {
		return nil
	}
	if err := json.Unmarshal(obj.Metadata, dst); err != nil {
		return fmt.Errorf("failed to decode metadata for %s %s: %w", wantType, obj.ID, err)
	}
	return nil
}
