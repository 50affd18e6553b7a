package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "myflix_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myflix_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myflix_token_verifications_total",
			Help: "Total number of bearer token verification attempts by status.",
		},
		[]string{"status"},
	)
)

// UseRequestMetrics installs per-request metrics and the /metrics route. Requests are
// labelled by route pattern so usernames, titles and ids do not become label values.
func UseRequestMetrics(router *gin.Engine) {
	p := ginprometheus.NewPrometheus("myflix")
	p.ReqCntURLLabelMappingFn = routeLabel
	p.Use(router)
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
