package widget

// Phase is the adapter's load lifecycle.
//
//	Unloaded ──Preload──► Loading ──ready──► Ready
//	                       │  ▲                │
//	          attempts     │  └───Preload──────┘ (recovery)
//	          exhausted    ▼  │
//	                      Failed ──ready (late)──► Ready
//
// While Loading, one attempt is consumed per delay interval; each attempt
// retries the widget load.
type Phase int

const (
	Unloaded Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var transitions = map[Phase][]Phase{
	Unloaded: {Loading},
	Loading:  {Ready, Failed},
	Ready:    {Loading},
	Failed:   {Loading, Ready},
}

// CanTransition reports whether the lifecycle allows moving from p to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
