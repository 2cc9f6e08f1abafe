package handler

type ContextKey string

var (
	SubCtxKey          ContextKey = "sub"
	GarmentCtx         ContextKey = "garment"
	OptimizationRunCtx ContextKey = "optimizationRun"
)
