package crawl

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressResolved reports the resolved page bound before the walk.
	ProgressResolved ProgressType = iota

	// ProgressResolveFailed reports that the bounding probe failed and
	// the crawl proceeds assuming a single page.
	ProgressResolveFailed

	// ProgressPageStarted reports that a listing page's items were
	// collected and processing begins.
	ProgressPageStarted

	// ProgressItemCompleted and ProgressItemFailed report individual
	// item outcomes as the pool drains.
	ProgressItemCompleted
	ProgressItemFailed

	// ProgressPageCompleted reports a fully processed page.
	ProgressPageCompleted

	// ProgressPageEmpty reports the end-of-content page that stopped
	// the walk early.
	ProgressPageEmpty

	// ProgressFlushed reports a completed durable write.
	ProgressFlushed

	// ProgressFinished reports the end of the crawl.
	ProgressFinished
)

// ProgressEvent reports progress during a crawl. The engine has no console
// dependency; callers render events however they like.
type ProgressEvent struct {
	Type       ProgressType
	Page       int
	TotalPages int
	URL        string
	Items      int // items found on the page
	Completed  int // items processed so far on the page
	Successes  int // cumulative successes
	Failures   int // cumulative failures
	Error      error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// emit invokes the callback when one is configured.
func (c *Crawler) emit(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
