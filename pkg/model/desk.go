package model

type Desk struct {
	ID    int    `json:"id" bson:"_id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}
