package output

import "alvrsettings/internal/domain/entities"

// ChangeSink receives one notification per successful update. It must not
// block on I/O: delivery, retries and timeouts belong to the sink.
type ChangeSink interface {
	Notify(change entities.Change)
}
