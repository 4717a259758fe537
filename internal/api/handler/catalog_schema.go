package handler

type createListingRequest struct {
	Type     string  `json:"type"      validate:"required"`
	Age      int     `json:"age"       validate:"required,gt=0"`
	Price    float64 `json:"price"     validate:"required,gt=0"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Info     string  `json:"info"      validate:"required"`
	Featured bool    `json:"featured"`
	Photo    string  `json:"photo"     validate:"required"`
	Sex      string  `json:"sex"       validate:"required,oneof=male female"`
	BreedID  string  `json:"breed_id"  validate:"required"`
	AdminID  string  `json:"admin_id"  validate:"required"`
}

type updateListingRequest struct {
	Sex     string `json:"sex"      validate:"required"`
	BreedID string `json:"breed_id" validate:"required"`
	Photo   string `json:"photo"`
}

type breedRequest struct {
	Name string `json:"name" validate:"required"`
}

type createProposalRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	ListingID   string `json:"listing_id"  validate:"required"`
	Description string `json:"description" validate:"required"`
}

type answerProposalRequest struct {
	Answer string `json:"answer" validate:"required"`
}
