package graph

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/draftwire/crossref/pkg/metrics"
)

var validate = validator.New()

// LoadOption configures a load call.
type LoadOption func(*loadSettings)

type loadSettings struct {
	metrics *metrics.Registry
}

// WithMetrics records load outcomes and graph sizes to the registry.
func WithMetrics(r *metrics.Registry) LoadOption {
	return func(s *loadSettings) { s.metrics = r }
}

func applyLoadOptions(opts []LoadOption) loadSettings {
	var s loadSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s loadSettings) record(m *Model, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.RecordGraphLoad("rejected", 0, 0)
		return
	}
	s.metrics.RecordGraphLoad("ok", m.NodeCount(), m.LinkCount())
}

// NodeRecord is the wire form of a node as produced by the extraction layer.
type NodeRecord struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	Name           string   `json:"name" yaml:"name" validate:"required"`
	Type           string   `json:"type" yaml:"type" validate:"required,oneof=definition clause covenant pricing representation condition event"`
	Category       string   `json:"category" yaml:"category"`
	Content        string   `json:"content" yaml:"content"`
	Location       string   `json:"location" yaml:"location"`
	CurrentValue   string   `json:"currentValue,omitempty" yaml:"currentValue,omitempty"`
	PreviousValue  string   `json:"previousValue,omitempty" yaml:"previousValue,omitempty"`
	IsModified     bool     `json:"isModified" yaml:"isModified"`
	ImpactSeverity string   `json:"impactSeverity" yaml:"impactSeverity" validate:"omitempty,oneof=none low medium high critical"`
	ImpactedNodes  []string `json:"impactedNodeIds,omitempty" yaml:"impactedNodeIds,omitempty"`
}

// LinkRecord is the wire form of a link.
type LinkRecord struct {
	ID          string  `json:"id" yaml:"id"`
	SourceID    string  `json:"sourceId" yaml:"sourceId" validate:"required"`
	TargetID    string  `json:"targetId" yaml:"targetId" validate:"required"`
	Type        string  `json:"type" yaml:"type" validate:"required,oneof=defines references depends_on triggers constrains modifies"`
	Strength    float64 `json:"strength" yaml:"strength" validate:"gte=0,lte=1"`
	Description string  `json:"description" yaml:"description"`
	IsModified  bool    `json:"isModified" yaml:"isModified"`
}

// Payload is a complete graph as handed over by the extraction subsystem.
type Payload struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
	Links []LinkRecord `json:"links" yaml:"links"`
}

// LoadJSON decodes and validates a JSON graph payload into a strict model.
func LoadJSON(data []byte, opts ...LoadOption) (*Model, error) {
	settings := applyLoadOptions(opts)

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		err = fmt.Errorf("decode graph payload: %w", err)
		settings.record(nil, err)
		return nil, err
	}

	m, err := p.Build()
	settings.record(m, err)
	return m, err
}

// LoadYAML decodes and validates a YAML graph payload into a strict model.
func LoadYAML(data []byte, opts ...LoadOption) (*Model, error) {
	settings := applyLoadOptions(opts)

	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		err = fmt.Errorf("decode graph payload: %w", err)
		settings.record(nil, err)
		return nil, err
	}

	m, err := p.Build()
	settings.record(m, err)
	return m, err
}

// Build validates every record and constructs a strict model.
func (p *Payload) Build() (*Model, error) {
	nodes, links, err := p.decode()
	if err != nil {
		return nil, err
	}
	return NewModel(nodes, links)
}

// BuildPartial is Build with dangling-link quarantine (see NewPartialModel).
func (p *Payload) BuildPartial() (*Model, []*Link, error) {
	nodes, links, err := p.decode()
	if err != nil {
		return nil, nil, err
	}
	return NewPartialModel(nodes, links)
}

func (p *Payload) decode() ([]*Node, []*Link, error) {
	nodes := make([]*Node, 0, len(p.Nodes))
	for i := range p.Nodes {
		rec := &p.Nodes[i]
		if err := validate.Struct(rec); err != nil {
			return nil, nil, fmt.Errorf("node record %q: %w", rec.ID, err)
		}
		nodeType, _ := ParseNodeType(rec.Type)
		severity := SeverityNone
		if rec.ImpactSeverity != "" {
			severity, _ = ParseSeverity(rec.ImpactSeverity)
		}
		nodes = append(nodes, &Node{
			ID:              rec.ID,
			Name:            rec.Name,
			Type:            nodeType,
			Category:        rec.Category,
			Content:         rec.Content,
			Location:        rec.Location,
			CurrentValue:    rec.CurrentValue,
			PreviousValue:   rec.PreviousValue,
			IsModified:      rec.IsModified,
			ImpactSeverity:  severity,
			ImpactedNodeIDs: rec.ImpactedNodes,
		})
	}

	links := make([]*Link, 0, len(p.Links))
	for i := range p.Links {
		rec := &p.Links[i]
		if err := validate.Struct(rec); err != nil {
			return nil, nil, fmt.Errorf("link record %q: %w", rec.ID, err)
		}
		linkType, _ := ParseLinkType(rec.Type)
		links = append(links, &Link{
			ID:          rec.ID,
			SourceID:    rec.SourceID,
			TargetID:    rec.TargetID,
			Type:        linkType,
			Strength:    rec.Strength,
			Description: rec.Description,
			IsModified:  rec.IsModified,
		})
	}

	return nodes, links, nil
}
