package dto

import (
	"brainmode-be/pkg/brain"
)

// OpenContextRequest opens a view. Every field is optional; absent ones keep the defaults.
type OpenContextRequest struct {
	Id        string `json:"id" validate:"omitempty,max=128"`
	Mode      string `json:"mode" validate:"omitempty,oneof=readonly readwrite search"`
	Style     string `json:"style" validate:"omitempty,oneof=forward backward"`
	ViewStyle string `json:"view_style" validate:"omitempty,oneof=sharability-coloring inference-coloring"`
	Height    *int   `json:"height" validate:"omitempty,min=1,max=7"`
	RootId    string `json:"root_id"`
	Title     string `json:"title"`
	Query     string `json:"query"`
	QueryType string `json:"query_type" validate:"omitempty,oneof=fulltext acronym shortcut ripple"`
	File      string `json:"file"`
	Format    string `json:"format"`
}

type CloneContextRequest struct {
	// Line is the cursor line of the source view at the time of cloning.
	Line int `json:"line" validate:"required,min=1"`
}

// SetFieldsRequest maps symbolic field names ("height", "view-style", ...) to new values.
type SetFieldsRequest map[string]interface{}

type PutAtomsRequest struct {
	Atoms   []brain.Atom `json:"atoms" validate:"required,dive"`
	Replace bool         `json:"replace"`
}

type ContextResponse struct {
	Id      string         `json:"id"`
	Context *brain.Context `json:"context"`
}

type GuardResponse struct {
	Guard  string `json:"guard"`
	Passed bool   `json:"passed"`
}

type VisibleAtomResponse struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Sharability float64  `json:"sharability"`
	Weight      float64  `json:"weight"`
	Color       string   `json:"color"`
	Bold        bool     `json:"bold"`
	Faint       bool     `json:"faint"`
	Created     string   `json:"created,omitempty"`
	Priority    *float64 `json:"priority,omitempty"`
}

type MessageResponse struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// ContextEventMessage is the payload carried on the in-process event bus.
type ContextEventMessage struct {
	Type       string                 `json:"type"`
	OccurredAt string                 `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}
