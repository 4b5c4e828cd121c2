package handler

import (
	"context"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"tax-engine/internal/cache"
	"tax-engine/internal/engine"
	"tax-engine/internal/jsonpatch"
	"tax-engine/internal/model"
)

type Handler struct {
	engine *engine.Engine
	cache  cache.Cache
}

func New(eng *engine.Engine, c cache.Cache) *Handler {
	if c == nil {
		c = cache.Nop{}
	}
	return &Handler{engine: eng, cache: c}
}

// Handle routes a request. It is the fasthttp.RequestHandler of the service.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/tax/compute":
		h.post(ctx, h.compute)
	case "/tax/summary":
		h.post(ctx, h.summary)
	case "/tax/compare":
		h.post(ctx, h.compare)
	case "/tax/years":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string][]int{"years": h.engine.Rules().Years()})
	case "/health":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) compute(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	res, msgs, err := h.evaluate(ctx, &req.TaxReturn)
	if err != nil {
		log.Printf("compute failed for tenant %q, year %d: %v", req.TenantID, req.TaxReturn.Year, err)
	}
	writeJSON(ctx, fasthttp.StatusOK, engine.Respond(req.TenantID, req.TaxReturn.Year, start, res, msgs, err))
}

func (h *Handler) summary(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	res, msgs, err := h.evaluate(ctx, &req.TaxReturn)
	if err != nil {
		log.Printf("summary failed for tenant %q, year %d: %v", req.TenantID, req.TaxReturn.Year, err)
	}

	resp := model.SummaryResponse{
		CalculationMetadata: engine.Metadata(req.TenantID, req.TaxReturn.Year, start, engine.Outcome(err)),
		Lines:               []model.SummaryLine{},
		Messages:            engine.Messages(msgs, err),
	}
	if err == nil {
		resp.Lines = SummaryLines(res)
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) compare(ctx *fasthttp.RequestCtx) {
	var req model.CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	base, baseMsgs, baseErr := h.evaluate(ctx, &req.Base)
	scenario, scenarioMsgs, scenarioErr := h.evaluate(ctx, &req.Scenario)

	msgs := append(prefixed("base", engine.Messages(baseMsgs, baseErr)),
		prefixed("scenario", engine.Messages(scenarioMsgs, scenarioErr))...)
	for i := range msgs {
		msgs[i].ID = i
	}

	err := baseErr
	if err == nil {
		err = scenarioErr
	}
	resp := model.CompareResponse{
		CalculationMetadata: engine.Metadata(req.TenantID, req.Scenario.Year, start, engine.Outcome(err)),
		Changes:             []model.PatchOperation{},
		Messages:            msgs,
	}
	if err != nil {
		log.Printf("compare failed for tenant %q: %v", req.TenantID, err)
		writeJSON(ctx, fasthttp.StatusOK, resp)
		return
	}

	changes, err := jsonpatch.Between(base, scenario)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not diff results: "+err.Error())
		return
	}
	resp.Base = base
	resp.Scenario = scenario
	resp.Changes = changes
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

type cachedEstimate struct {
	Result   *model.TaxResult           `json:"result"`
	Messages []model.CalculationMessage `json:"messages"`
}

// evaluate runs the engine behind the result cache. Only successful estimates
// are cached; failures are recomputed so their messages stay current.
func (h *Handler) evaluate(ctx context.Context, ret *model.TaxReturn) (*model.TaxResult, []model.CalculationMessage, error) {
	fp, ok := h.engine.Rules().Fingerprint(ret.Year)
	if !ok {
		return h.engine.Evaluate(ret)
	}
	key, err := cache.Key(fp, ret)
	if err != nil {
		log.Printf("cache key: %v", err)
		return h.engine.Evaluate(ret)
	}

	if b, hit := h.cache.Get(ctx, key); hit {
		var c cachedEstimate
		if err := json.Unmarshal(b, &c); err == nil && c.Result != nil {
			return c.Result, c.Messages, nil
		}
	}

	res, msgs, err := h.engine.Evaluate(ret)
	if err != nil {
		return nil, msgs, err
	}
	if b, err := json.Marshal(cachedEstimate{Result: res, Messages: msgs}); err == nil {
		if err := h.cache.Set(ctx, key, b); err != nil {
			log.Printf("cache set: %v", err)
		}
	}
	return res, msgs, nil
}

func prefixed(prefix string, msgs []model.CalculationMessage) []model.CalculationMessage {
	for i := range msgs {
		if msgs[i].Field == "" {
			msgs[i].Field = prefix
		} else {
			msgs[i].Field = prefix + "." + msgs[i].Field
		}
	}
	return msgs
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encode response: "+err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
