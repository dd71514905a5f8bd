package models

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
)

type Notification struct {
	Variant Variant `json:"variant"`
	Message string  `json:"message"`
}
