package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := ApiHandler{}
	router := gin.New()
	router.POST("/allocate", handler.allocate)
	router.POST("/allocate/csv", handler.allocateCsv)
	return router
}

func Test_preferencesFromRequest(t *testing.T) {
	t.Run("maps fields and parses enums", func(t *testing.T) {
		prefs, err := preferencesFromRequest(AllocateRequest{
			Budget:             25000,
			HorizonYears:       7,
			RiskProfile:        "moderate-aggressive",
			UsaPct:             60,
			IndiaPct:           40,
			IncludeGold:        true,
			IncludeCrypto:      true,
			CryptoCapPct:       3,
			Currency:           "inr",
			RebalanceFrequency: "yearly",
		})
		require.NoError(t, err)

		require.Equal(t, domain.RiskProfile_ModerateAggressive, prefs.RiskProfile)
		require.Equal(t, domain.Currency_INR, prefs.Currency)
		require.Equal(t, domain.RebalanceFrequency_Yearly, prefs.RebalanceFrequency)
		require.Equal(t, 60.0, prefs.RegionSplit.UsaPct)
	})

	t.Run("currency and rebalance frequency default when omitted", func(t *testing.T) {
		prefs, err := preferencesFromRequest(AllocateRequest{RiskProfile: "moderate"})
		require.NoError(t, err)

		require.Equal(t, domain.Currency_USD, prefs.Currency)
		require.Equal(t, domain.RebalanceFrequency_Quarterly, prefs.RebalanceFrequency)
	})

	t.Run("bad risk profile errors", func(t *testing.T) {
		_, err := preferencesFromRequest(AllocateRequest{RiskProfile: "reckless"})
		require.Error(t, err)
	})
}

func Test_allocate(t *testing.T) {
	t.Run("happy path returns rows and aggregations", func(t *testing.T) {
		body := `{
			"budget": 25000,
			"horizonYears": 7,
			"riskProfile": "moderate",
			"usaPct": 60,
			"indiaPct": 40,
			"includeGold": true,
			"includeCrypto": false,
			"cryptoCapPct": 3
		}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/allocate", strings.NewReader(body))
		testRouter().ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)

		var response AllocateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		require.NotEmpty(t, response.LineItems)
		require.LessOrEqual(t, len(response.TopByPct), 8)

		total := 0.0
		for _, item := range response.LineItems {
			total += item.Pct
		}
		require.InDelta(t, 100, total, 1e-6)

		require.InDelta(t, 60, response.ByAssetClass["Equity"], 1e-6)
		require.InDelta(t, 60, response.ByCountry["USA"], 1e-6)
		require.Zero(t, response.ByAssetClass["Crypto"])
		require.Equal(t, len(response.LineItems), response.Summary.NumLines)
	})

	t.Run("region split not summing to 100 returns 400", func(t *testing.T) {
		body := `{"riskProfile": "moderate", "usaPct": 60, "indiaPct": 30}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/allocate", strings.NewReader(body))
		testRouter().ServeHTTP(w, req)

		require.Equal(t, 400, w.Code)
	})

	t.Run("unparseable body returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/allocate", strings.NewReader("{"))
		testRouter().ServeHTTP(w, req)

		require.Equal(t, 400, w.Code)
	})
}

func Test_allocateCsv(t *testing.T) {
	t.Run("returns a csv attachment", func(t *testing.T) {
		body := `{
			"budget": 10000,
			"horizonYears": 12,
			"riskProfile": "aggressive",
			"usaPct": 50,
			"indiaPct": 50,
			"includeGold": true,
			"includeCrypto": true,
			"cryptoCapPct": 1
		}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/allocate/csv", strings.NewReader(body))
		testRouter().ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)
		require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		require.Contains(t, w.Header().Get("Content-Disposition"), "allocation.csv")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Greater(t, len(lines), 1)
		require.True(t, strings.HasPrefix(lines[0], "Asset Class,Instrument,Country,Allocation %"))
	})
}
