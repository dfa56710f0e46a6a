package services

import (
	"strings"

	"github.com/codyseavey/mtga-ko/internal/metrics"
	"github.com/codyseavey/mtga-ko/internal/models"
)

// UsedCoreSet records the cores already annotated on one card.
type UsedCoreSet map[string]struct{}

func (s UsedCoreSet) Has(core string) bool {
	_, ok := s[core]
	return ok
}

func (s UsedCoreSet) Add(core string) {
	s[core] = struct{}{}
}

// AnnotationDecision names the outcome of one resolver call
type AnnotationDecision string

const (
	DecisionTitlePair     AnnotationDecision = "title-body-pair"
	DecisionTitleFallback AnnotationDecision = "title-fallback"
	DecisionCore          AnnotationDecision = "core"
	DecisionDuplicate     AnnotationDecision = "duplicate"
	DecisionNoMatch       AnnotationDecision = "no-match"
)

// AnnotationTrace describes one resolver decision.
type AnnotationTrace struct {
	Input    string
	Cleaned  string
	Decision AnnotationDecision
	Core     string
	Title    string
	KoKR     string
}

// AnnotationTracer observes resolver decisions.
type AnnotationTracer interface {
	TraceAnnotation(trace AnnotationTrace)
}

// AnnotationTracerFunc adapts a function to AnnotationTracer.
type AnnotationTracerFunc func(trace AnnotationTrace)

func (f AnnotationTracerFunc) TraceAnnotation(trace AnnotationTrace) {
	f(trace)
}

// ResolverOptions tunes an AnnotationResolver.
type ResolverOptions struct {
	// CoreFallback enables a second pass matching core keys directly
	// against the ability text when no title matched.
	CoreFallback bool
	Tracer       AnnotationTracer
}

// AnnotationResolver finds the Korean explanation for an ability's English
// text, at most once per core on a card.
type AnnotationResolver struct {
	dict *AnnotationDictionary
	opts ResolverOptions
}

func NewAnnotationResolver(dict *AnnotationDictionary, opts ResolverOptions) *AnnotationResolver {
	return &AnnotationResolver{dict: dict, opts: opts}
}

// Resolve returns the explanation for the first title found in abilityText.
// It returns false when nothing matches or when the matched core was
// already used on this card; both are normal outcomes.
func (r *AnnotationResolver) Resolve(abilityText string, used UsedCoreSet) (string, bool) {
	cleaned := matchKey(abilityText)
	trace := AnnotationTrace{Input: abilityText, Cleaned: cleaned}

	for _, core := range r.dict.Cores() {
		for _, v := range core.Variants {
			if v.Type != models.VariantTitle {
				continue
			}
			title := matchKey(v.EnUS)
			if title == "" || !strings.Contains(cleaned, title) {
				continue
			}

			trace.Core, trace.Title = core.Key, v.EnUS
			if used.Has(core.Key) {
				return r.finish(trace, DecisionDuplicate, "")
			}
			if v.Pair != nil {
				used.Add(core.Key)
				return r.finish(trace, DecisionTitlePair, v.Pair.KoKR)
			}
			if body := core.FirstBody(); body != nil {
				used.Add(core.Key)
				return r.finish(trace, DecisionTitleFallback, body.KoKR)
			}
		}
	}

	if r.opts.CoreFallback {
		for _, core := range r.dict.Cores() {
			if core.Key == "" || !strings.Contains(cleaned, core.Key) {
				continue
			}
			trace.Core, trace.Title = core.Key, ""
			if used.Has(core.Key) {
				return r.finish(trace, DecisionDuplicate, "")
			}
			if body := core.FirstBody(); body != nil {
				used.Add(core.Key)
				return r.finish(trace, DecisionCore, body.KoKR)
			}
		}
	}

	trace.Core, trace.Title = "", ""
	return r.finish(trace, DecisionNoMatch, "")
}

func (r *AnnotationResolver) finish(trace AnnotationTrace, decision AnnotationDecision, koKR string) (string, bool) {
	trace.Decision = decision
	trace.KoKR = koKR
	metrics.AnnotationDecisionsTotal.WithLabelValues(string(decision)).Inc()
	if r.opts.Tracer != nil {
		r.opts.Tracer.TraceAnnotation(trace)
	}
	return koKR, koKR != ""
}
