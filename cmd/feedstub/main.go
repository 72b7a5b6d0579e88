// Command feedstub serves a small fixture eatery feed for local
// development, so the server can run without the real upstream fetcher.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	port := flag.String("port", "8090", "port to listen on")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.GET("/api/v1/eateries", func(c *gin.Context) {
		c.JSON(http.StatusOK, fixtureFeed(time.Now()))
	})

	slog.Info("feed stub listening", slog.String("port", *port))
	if err := r.Run(":" + *port); err != nil {
		slog.Error("feed stub exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// fixtureFeed builds a feed anchored to now: one dining hall currently
// serving lunch with wait-time samples, one cafe opening later today, and
// one location with no coordinates.
func fixtureFeed(now time.Time) gin.H {
	day := now.Format("2006-01-02")
	rfc := func(t time.Time) string { return t.Format(time.RFC3339) }

	return gin.H{
		"eateries": []gin.H{
			{
				"id":              31,
				"name":            "Okenshields",
				"campus_area":     "central",
				"latitude":        42.4465,
				"longitude":       -76.4851,
				"payment_methods": []string{"swipe", "brb"},
				"events": []gin.H{
					{
						"date":  day,
						"start": rfc(now.Add(-time.Hour)),
						"end":   rfc(now.Add(2 * time.Hour)),
						"label": "Lunch",
						"menu": []gin.H{
							{
								"category": "Entrees",
								"items": []gin.H{
									{"name": "Pasta Bar"},
									{"name": "Grilled Chicken", "healthy": true},
								},
							},
						},
					},
					{
						"date":  day,
						"start": rfc(now.Add(5 * time.Hour)),
						"end":   rfc(now.Add(8 * time.Hour)),
						"label": "Dinner",
					},
				},
				"wait_times": []gin.H{
					{
						"date":   day,
						"method": "nearest",
						"samples": []gin.H{
							{
								"timestamp":        rfc(now),
								"low_seconds":      120,
								"expected_seconds": 300,
								"high_seconds":     600,
							},
							{
								"timestamp":        rfc(now.Add(30 * time.Minute)),
								"low_seconds":      300,
								"expected_seconds": 540,
								"high_seconds":     900,
							},
						},
					},
				},
			},
			{
				"id":              44,
				"name":            "Gimme Coffee",
				"campus_area":     "north",
				"latitude":        42.4534,
				"longitude":       -76.4735,
				"payment_methods": []string{"cash", "credit"},
				"events": []gin.H{
					{
						"date":  day,
						"start": rfc(now.Add(3 * time.Hour)),
						"end":   rfc(now.Add(9 * time.Hour)),
						"label": "Open",
					},
				},
			},
			{
				"id":              52,
				"name":            "Food Cart",
				"campus_area":     "west",
				"payment_methods": []string{"cash"},
				"events":          []gin.H{},
			},
		},
	}
}
