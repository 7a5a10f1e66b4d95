package reporter

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/getlawrence/reporter/internal/elapsed"
	"github.com/getlawrence/reporter/internal/logger"
	"github.com/getlawrence/reporter/internal/progressbar"
)

// ActivityKind selects how an activity is displayed.
type ActivityKind int

const (
	// KindUnrecognized activities are accepted and ignored.
	KindUnrecognized ActivityKind = iota
	KindSpinner
	KindProgress
)

// ParseActivityKind maps "spinner" and "progress"; anything else is KindUnrecognized.
func ParseActivityKind(s string) ActivityKind {
	switch s {
	case "spinner":
		return KindSpinner
	case "progress":
		return KindProgress
	default:
		return KindUnrecognized
	}
}

func (k ActivityKind) String() string {
	switch k {
	case KindSpinner:
		return "spinner"
	case KindProgress:
		return "progress"
	default:
		return "unrecognized"
	}
}

// Activity identifies one in-flight unit of work.
type Activity struct {
	ID   string
	Kind ActivityKind
}

// ActivityState carries an update. Zero fields are ignored. Current only
// matters for being non-zero: each such update advances a progress bar by one.
type ActivityState struct {
	StartTime time.Time
	Status    string
	Total     int
	Current   int
}

// ActivityHandle drives one activity. Done ends it; later calls are ignored.
type ActivityHandle interface {
	Update(state ActivityState)
	Done()
}

const (
	progressWidth  = 30
	progressFormat = " [:bar] :current/:total :elapsed s :percent %s"
)

// CreateActivity starts tracking a.
func (r *Reporter) CreateActivity(a Activity) ActivityHandle {
	return r.CreateActivityContext(context.Background(), a)
}

// CreateActivityContext starts tracking a; its span is a child of any span in ctx.
func (r *Reporter) CreateActivityContext(ctx context.Context, a Activity) ActivityHandle {
	switch a.Kind {
	case KindSpinner:
		return &spinnerActivity{
			lifecycle: r.begin(ctx, a),
			spinner:   r.out.Activity(),
			state:     spinnerState{start: r.now()},
		}
	case KindProgress:
		bar := r.out.Progress(fmt.Sprintf(progressFormat, a.ID), progressbar.Options{
			Total: 0,
			Width: progressWidth,
			Clear: true,
		})
		return &progressActivity{
			lifecycle: r.begin(ctx, a),
			bar:       bar,
			state:     progressState{start: r.now()},
		}
	default:
		return noopActivity{}
	}
}

// lifecycle is the part shared by displayed activities: the span, the
// observer notifications and the done guard.
type lifecycle struct {
	r        *Reporter
	activity Activity
	span     trace.Span
	done     bool
}

func (r *Reporter) begin(ctx context.Context, a Activity) lifecycle {
	_, span := r.tracer.Start(ctx, "activity "+a.ID, trace.WithAttributes(
		attribute.String("activity.id", a.ID),
		attribute.String("activity.kind", a.Kind.String()),
	))
	r.observer.ActivityStarted(a.Kind.String())
	return lifecycle{r: r, activity: a, span: span}
}

func (l *lifecycle) finish(start, now time.Time, attrs ...attribute.KeyValue) {
	l.done = true
	l.r.observer.ActivityFinished(l.activity.Kind.String(), now.Sub(start))
	l.span.SetAttributes(attrs...)
	l.span.End()
}

type spinnerState struct {
	start  time.Time
	status string
}

// apply folds u into the state and returns the spinner labels to show, in order.
func (s spinnerState) apply(id string, u ActivityState) (spinnerState, []string) {
	var labels []string
	if !u.StartTime.IsZero() {
		s.start = u.StartTime
		labels = append(labels, id)
	}
	if u.Status != "" {
		s.status = u.Status
		labels = append(labels, id+" — "+u.Status)
	}
	return s, labels
}

func (s spinnerState) summary(id string, now time.Time) string {
	str := id + " — " + elapsed.Since(s.start, now)
	if s.status != "" {
		str += " — " + s.status
	}
	return str
}

type spinnerActivity struct {
	lifecycle
	spinner logger.Spinner
	state   spinnerState
}

func (a *spinnerActivity) Update(u ActivityState) {
	if a.done {
		return
	}
	var labels []string
	a.state, labels = a.state.apply(a.activity.ID, u)
	for _, label := range labels {
		a.spinner.Tick(label)
	}
	if u.Status != "" {
		a.span.AddEvent("status", trace.WithAttributes(attribute.String("activity.status", u.Status)))
	}
}

func (a *spinnerActivity) Done() {
	if a.done {
		return
	}
	now := a.r.now()
	a.r.Success(a.state.summary(a.activity.ID, now))
	a.spinner.End()
	a.finish(a.state.start, now, attribute.String("activity.status", a.state.status))
}

type progressState struct {
	start time.Time
}

// progressEffects are the bar operations an update asks for.
type progressEffects struct {
	total int
	tick  bool
}

func (s progressState) apply(u ActivityState) (progressState, progressEffects) {
	var fx progressEffects
	if !u.StartTime.IsZero() {
		s.start = u.StartTime
	}
	if u.Total != 0 {
		fx.total = u.Total
	}
	fx.tick = u.Current != 0
	return s, fx
}

type progressActivity struct {
	lifecycle
	bar   logger.ProgressBar
	state progressState
}

func (a *progressActivity) Update(u ActivityState) {
	if a.done {
		return
	}
	var fx progressEffects
	a.state, fx = a.state.apply(u)
	if fx.total != 0 {
		a.bar.SetTotal(fx.total)
	}
	if fx.tick {
		a.bar.Tick()
	}
}

func (a *progressActivity) Done() {
	if a.done {
		return
	}
	now := a.r.now()
	current, total := a.bar.Current(), a.bar.Total()
	a.bar.End()
	a.r.Success(fmt.Sprintf("%s — %d/%d - %s s", a.activity.ID, current, total, elapsed.Since(a.state.start, now)))
	a.finish(a.state.start, now,
		attribute.Int("activity.current", current),
		attribute.Int("activity.total", total),
	)
}

type noopActivity struct{}

func (noopActivity) Update(ActivityState) {}
func (noopActivity) Done()                {}
