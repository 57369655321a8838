package bundlecache

// Reasons passed to Hooks.EntryRejected.
const (
	ReasonAbsent          = "absent"
	ReasonCorrupt         = "corrupt"
	ReasonEmpty           = "empty"
	ReasonExpired         = "expired"
	ReasonVersionMismatch = "version_mismatch"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; Load and Store call them
// inline. Wrap with hooks/async for anything slower.
type Hooks interface {
	// A requested language was left out of a Load result.
	EntryRejected(language, reason string)

	// A single language write failed during Store.
	WriteFailed(language string, err error)

	// Save replaced a payload that was still waiting for the quiet window.
	SaveCoalesced(languages int)

	// A deferred Save ran; err is the Store result.
	SaveFlushed(languages int, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntryRejected(string, string) {}
func (NopHooks) WriteFailed(string, error)    {}
func (NopHooks) SaveCoalesced(int)            {}
func (NopHooks) SaveFlushed(int, error)       {}
