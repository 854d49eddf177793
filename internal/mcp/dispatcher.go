package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// Request is one logical tool-call request, independent of wire framing.
type Request struct {
	Tool string
	Args map[string]any
}

// Result is the tagged outcome of a dispatch: either Payload or Err is set,
// never both. Every dispatched request produces exactly one Result.
type Result struct {
	Payload map[string]any
	Err     *fault.Error
}

// Failed reports whether the result is the failure variant.
func (r Result) Failed() bool { return r.Err != nil }

// Dispatcher translates tool-call requests into handler invocations and
// outcomes back into results. It is the fault-isolation boundary: no handler
// error escapes it, and it owns no state across requests.
type Dispatcher struct {
	toolbox *Toolbox
	log     *logrus.Entry
	timeout time.Duration
}

// NewDispatcher wires a toolbox into a dispatcher. timeout bounds each
// handler invocation; zero disables the dispatcher-level bound (the backend
// client still enforces its own).
func NewDispatcher(tb *Toolbox, log *logrus.Entry, timeout time.Duration) *Dispatcher {
	return &Dispatcher{toolbox: tb, log: log, timeout: timeout}
}

// Dispatch runs one request through lookup, validation, execution, and result
// shaping. Invalid requests never reach the handler, so no backend side
// effects occur for them.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	start := time.Now()
	log := d.log
	if log != nil {
		log = log.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"tool":       req.Tool,
		})
	}

	tool, err := d.toolbox.Lookup(req.Tool)
	if err != nil {
		return d.fail(log, start, fault.From(err))
	}

	desc := tool.Descriptor()
	args := req.Args
	if args == nil {
		args = map[string]any{}
	}
	if err := Validate(desc.InputSchema, args); err != nil {
		return d.fail(log, start, fault.From(err))
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	payload, invokeErr := tool.Invoke(callCtx, args)
	if invokeErr != nil {
		return d.fail(log, start, fault.From(invokeErr))
	}

	shaped, shapeErr := shapePayload(desc.OutputSchema, payload)
	if shapeErr != nil {
		return d.fail(log, start, shapeErr)
	}

	if log != nil {
		log.WithField("duration", time.Since(start).String()).Info("tool call succeeded")
	}
	return Result{Payload: shaped}
}

func (d *Dispatcher) fail(log *logrus.Entry, start time.Time, err *fault.Error) Result {
	if log != nil {
		log.WithFields(logrus.Fields{
			"duration": time.Since(start).String(),
			"kind":     string(err.Kind),
		}).Warn(err.Message)
	}
	return Result{Err: err}
}

// shapePayload enforces the tool's declared output shape: declared-required
// fields must be present and non-null, and undeclared fields are stripped so
// backend additions never leak through.
func shapePayload(schema *protocol.JSONSchema, payload map[string]any) (map[string]any, *fault.Error) {
	if payload == nil {
		payload = map[string]any{}
	}
	if schema == nil {
		return payload, nil
	}

	for _, name := range schema.Required {
		value, ok := payload[name]
		if !ok || value == nil {
			return nil, fault.UpstreamShape("backend response missing required field %q", name)
		}
	}

	if len(schema.Properties) == 0 {
		return payload, nil
	}
	shaped := make(map[string]any, len(schema.Properties))
	for name := range schema.Properties {
		if value, ok := payload[name]; ok {
			shaped[name] = value
		}
	}
	return shaped, nil
}
