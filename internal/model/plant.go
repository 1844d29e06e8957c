package model

type Plant struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Species     string `json:"especie"`
	Description string `json:"descripcio"`
	Image       string `json:"imatge"`
}

type PlantInput struct {
	Name        string `json:"nom" validate:"required,max=255"`
	Species     string `json:"especie" validate:"max=255"`
	Description string `json:"descripcio" validate:"max=4096"`
	Image       string `json:"imatge" validate:"max=2048"`
}
