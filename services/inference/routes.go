package inference

import (
	"github.com/AleutianAI/aleutian-infer-core/pkg/generator"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
	"github.com/AleutianAI/aleutian-infer-core/services/router"
)

// Register wires the two routes described in spec §4.7 onto rt.
func Register(rt *router.Router, gen generator.Generator, modelName string) {
	h := &Handlers{Gen: gen, ModelName: modelName}
	rt.Handle(`/healthz`, h.Healthz)
	rt.Handle(`/v1/chat/completions`, router.MethodGuard(httpcodec.MethodPOST, h.ChatCompletions))
}
