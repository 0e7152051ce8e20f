package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
	"github.com/AleutianAI/aleutian-infer-core/services/router"
)

// Handler renders the registry's current metric families in the
// Prometheus text exposition format. It is registered directly on the
// server's router rather than via promhttp, since this codec has no
// net/http dependency to hang the standard handler off of.
func Handler(gatherer prometheus.Gatherer) router.Handler {
	return func(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error {
		families, err := gatherer.Gather()
		if err != nil {
			return err
		}
		if err := rw.WriteStatus(200); err != nil {
			return err
		}
		if err := rw.WriteHeader("Content-Type", string(expfmt.FmtText)); err != nil {
			return err
		}
		enc := expfmt.NewEncoder(rw, expfmt.FmtText)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return err
			}
		}
		return nil
	}
}
