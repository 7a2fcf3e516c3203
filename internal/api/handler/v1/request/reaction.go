package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

func (req *ReactionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ReactionType, validation.Required, validation.In(reactionTypes...)),
	)
}

type ReactionTarget struct {
	EntityType string `uri:"entityType"`
	EntityID   string `uri:"entityID"`
}

func (req *ReactionTarget) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EntityType, validation.Required, validation.In(entityTypes...)),
	)
}
