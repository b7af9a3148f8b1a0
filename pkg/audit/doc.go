// Package audit records security-relevant actions, most importantly requests
// rejected by the input guard.
//
// A Logger builds Event values (UUID identifier, UTC timestamp, tenant,
// request id and client details pulled from the context) and hands them to a
// Storage. Three storages ship with the package:
//
//   - SlogStorage writes each event as a structured log record.
//   - MemoryStorage keeps events in memory and supports simple queries.
//   - AsyncStorage wraps another Storage, queues events on a buffered channel
//     and writes them in batches from one background goroutine.
//
// # Usage
//
//	store := audit.NewAsyncStorage(audit.NewSlogStorage(log), audit.AsyncOptions{
//	    BufferSize: 1000,
//	    DropOnFull: true,
//	})
//	defer store.Close(context.Background())
//
//	auditLog := audit.NewLogger(store,
//	    audit.WithRequestIDExtractor(func(ctx context.Context) (string, bool) {
//	        id := middleware.GetReqID(ctx)
//	        return id, id != ""
//	    }),
//	)
//
//	v := sanitizer.SecurityCheck(value)
//	if err := auditLog.LogThreat(ctx, v, audit.WithSource("query"), audit.WithField("q")); err != nil {
//	    log.WarnContext(ctx, "audit write failed", logger.Error(err))
//	}
//
// # Error Handling
//
//   - ErrEventValidation: the event lacks an action or result.
//   - ErrBufferFull:      AsyncStorage dropped events (DropOnFull only).
//   - ErrStorageClosed:   Store was called after Close.
//
// Background write failures of AsyncStorage are reported to
// AsyncOptions.OnError.
package audit
