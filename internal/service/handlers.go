package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

const (
	ServiceName = "mydiet.v1.DietService"

	ExtractProcedure          = "/" + ServiceName + "/Extract"
	RecommendProcedure        = "/" + ServiceName + "/Recommend"
	GenerateMealPlanProcedure = "/" + ServiceName + "/GenerateMealPlan"
	AnalyzeProcedure          = "/" + ServiceName + "/Analyze"
	HealthProcedure           = "/" + ServiceName + "/Health"
)

// JSONCodec encodes plain Go structs with encoding/json. It replaces the
// built-in protobuf JSON codec, which only accepts proto messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// NewHandler mounts every DietService procedure and returns the path prefix
// and handler, in the shape of generated connect code.
func NewHandler(svc *DietService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ExtractProcedure, connect.NewUnaryHandler(ExtractProcedure, svc.Extract, opts...))
	mux.Handle(RecommendProcedure, connect.NewUnaryHandler(RecommendProcedure, svc.Recommend, opts...))
	mux.Handle(GenerateMealPlanProcedure, connect.NewUnaryHandler(GenerateMealPlanProcedure, svc.GenerateMealPlan, opts...))
	mux.Handle(AnalyzeProcedure, connect.NewUnaryHandler(AnalyzeProcedure, svc.Analyze, opts...))
	mux.Handle(HealthProcedure, connect.NewUnaryHandler(HealthProcedure, svc.Health, opts...))
	return "/" + ServiceName + "/", mux
}

// LoggingInterceptor logs one line per RPC with its outcome and duration.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			entry := log.WithField("procedure", req.Spec().Procedure).
				WithField("duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				entry.WithField("code", connect.CodeOf(err).String()).WithError(err).Warn("rpc failed")
				return resp, err
			}
			entry.Debug("rpc ok")
			return resp, nil
		}
	}
}
