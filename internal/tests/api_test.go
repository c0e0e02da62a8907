// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sellerops/margin-backend/internal/calculator"
	"github.com/sellerops/margin-backend/internal/config"
	"github.com/sellerops/margin-backend/internal/i18n"
	"github.com/sellerops/margin-backend/internal/router"
)

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize(i18n.LangEnglish))
}

func (suite *APITestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Simulation:  config.SimulationConfig{DefaultDollarRate: 5},
		SeedSamples: true,
	}
	logger, _ := test.NewNullLogger()
	engine := calculator.NewEngine(calculator.DefaultSchedule(), calculator.StandardDefaults())

	r, err := router.Initialize(cfg, logger, engine, nil)
	suite.Require().NoError(err)
	suite.router = r
}

func (suite *APITestSuite) request(method, path string, body interface{}, lang string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func data(response map[string]interface{}) map[string]interface{} {
	return response["data"].(map[string]interface{})
}

func (suite *APITestSuite) TestHealth() {
	w, response := suite.request("GET", "/health", nil, "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "healthy", response["status"])
	assert.Equal(suite.T(), "br-2025.1", response["schedule_version"])
}

func (suite *APITestSuite) TestCalculate() {
	w, response := suite.request("POST", "/v1/calculator/calculate", map[string]interface{}{
		"sell_price": "100,00",
		"cost":       40,
		"category":   "consumer_electronics",
	}, "en")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.True(suite.T(), response["success"].(bool))

	result := data(response)["result"].(map[string]interface{})
	platform := result["platform"].(map[string]interface{})
	merchant := result["merchant"].(map[string]interface{})
	assert.Equal(suite.T(), "R$ 47.86", platform["net_profit"].(map[string]interface{})["display"])
	assert.Equal(suite.T(), "R$ 40.00", merchant["net_profit"].(map[string]interface{})["display"])

	recommendation := result["recommendation"].(map[string]interface{})
	assert.Equal(suite.T(), "platform", recommendation["strategy"])
	assert.Contains(suite.T(), recommendation["message"], "R$ 7.86")
}

func (suite *APITestSuite) TestCalculatePortugueseFormatting() {
	w, response := suite.request("POST", "/v1/calculator/calculate", map[string]interface{}{
		"sell_price": 100,
		"cost":       40,
		"category":   "consumer_electronics",
	}, "pt-BR")

	suite.Require().Equal(http.StatusOK, w.Code)
	result := data(response)["result"].(map[string]interface{})
	platform := result["platform"].(map[string]interface{})
	assert.Equal(suite.T(), "R$ 47,86", platform["net_profit"].(map[string]interface{})["display"])
	assert.Equal(suite.T(), "8,00%", result["referral_fee_rate"].(map[string]interface{})["display"])
}

func (suite *APITestSuite) TestCalculateZeroPriceRendersPlaceholder() {
	w, response := suite.request("POST", "/v1/calculator/calculate", map[string]interface{}{
		"sell_price": "0",
		"cost":       "0",
	}, "en")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	result := data(response)["result"].(map[string]interface{})
	margin := result["merchant"].(map[string]interface{})["margin_percent"].(map[string]interface{})
	assert.Nil(suite.T(), margin["value"])
	assert.Equal(suite.T(), "—", margin["display"])
}

func (suite *APITestSuite) TestCalculateMissingFields() {
	w, response := suite.request("POST", "/v1/calculator/calculate", map[string]interface{}{
		"cost": "40",
	}, "en")

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
	apiErr := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INSUFFICIENT_DATA", apiErr["code"])
	assert.Equal(suite.T(), []interface{}{"sell_price"}, apiErr["details"].(map[string]interface{})["fields"])
}

func (suite *APITestSuite) TestCalculateRejectsMalformedBody() {
	w, _ := suite.request("POST", "/v1/calculator/calculate", map[string]interface{}{
		"sell_price": true,
		"cost":       "40",
	}, "en")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCatalog() {
	w, response := suite.request("GET", "/v1/categories", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), data(response)["categories"], len(calculator.DefaultSchedule().Categories))

	w, response = suite.request("GET", "/v1/fee-schedule/logistics?weight_g=100", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "R$ 4.14", data(response)["display"])

	w, _ = suite.request("GET", "/v1/fee-schedule/logistics?weight_g=heavy", nil, "en")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestProductWorkflow() {
	w, response := suite.request("POST", "/v1/products", map[string]interface{}{
		"name":     "Fone Bluetooth",
		"supplier": "Shenzhen Electronics",
		"category": "consumer_electronics",
		"asin":     "B000000001",
	}, "en")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := data(response)["product"].(map[string]interface{})["id"].(string)

	w, _ = suite.request("POST", "/v1/products/"+id+"/save", nil, "en")
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w, response = suite.request("POST", "/v1/products/"+id+"/simulate", map[string]interface{}{
		"product_cost":       10,
		"fba_logistics_cost": 8,
		"fbm_logistics_cost": 15,
		"sell_price":         150,
		"strategy":           "platform",
	}, "en")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	summary := data(response)["summary"].(map[string]interface{})
	assert.Equal(suite.T(), "R$ 92.00", summary["net_profit"].(map[string]interface{})["display"])

	w, response = suite.request("PATCH", "/v1/products/"+id+"/simulation", map[string]interface{}{
		"sell_price": "abc",
		"strategy":   "merchant",
	}, "en")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	summary = data(response)["summary"].(map[string]interface{})
	assert.Equal(suite.T(), "R$ 85.00", summary["net_profit"].(map[string]interface{})["display"])

	w, _ = suite.request("POST", "/v1/products/"+id+"/save", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)

	w, _ = suite.request("PUT", "/v1/products/"+id+"/status", map[string]interface{}{"status": "purchased"}, "en")
	suite.Require().Equal(http.StatusOK, w.Code)

	w, response = suite.request("GET", "/v1/products?status=purchased&sort=roi", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), response["data"], 1)
	assert.Equal(suite.T(), "1", w.Header().Get("X-Total-Count"))

	w, _ = suite.request("GET", "/v1/products?status=lost", nil, "en")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestProductValidation() {
	w, response := suite.request("POST", "/v1/products", map[string]interface{}{
		"name":     "Fo",
		"supplier": "Shenzhen",
		"category": "not_a_category",
	}, "en")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response["error"].(map[string]interface{})["code"])

	w, _ = suite.request("GET", "/v1/products/not-a-uuid", nil, "en")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, response = suite.request("GET", "/v1/products/00000000-0000-0000-0000-000000000001", nil, "en")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Product not found", response["error"].(map[string]interface{})["message"])
}

func (suite *APITestSuite) TestSimulationOverflowIsRejected() {
	w, response := suite.request("POST", "/v1/products", map[string]interface{}{
		"name":     "Fone Bluetooth",
		"supplier": "Shenzhen",
		"category": "consumer_electronics",
	}, "en")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := data(response)["product"].(map[string]interface{})["id"].(string)

	w, response = suite.request("POST", "/v1/products/"+id+"/simulate", map[string]interface{}{
		"product_cost": 1e308,
		"dollar_rate":  5,
		"sell_price":   100,
		"strategy":     "platform",
	}, "en")
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(suite.T(), "INVALID_SIMULATION", response["error"].(map[string]interface{})["code"])

	w, response = suite.request("GET", "/v1/products/"+id, nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Nil(suite.T(), data(response)["product"].(map[string]interface{})["result"])

	w, _ = suite.request("GET", "/v1/products", nil, "en")
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
}

func (suite *APITestSuite) TestErrorCarriesRequestID() {
	req, _ := http.NewRequest("GET", "/v1/products/not-a-uuid", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "req-123", response["error"].(map[string]interface{})["request_id"])
	assert.Equal(suite.T(), "req-123", w.Header().Get("X-Request-ID"))
}

func (suite *APITestSuite) TestPartners() {
	w, response := suite.request("GET", "/v1/suppliers?search=global", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)
	suppliers := response["data"].([]interface{})
	suite.Require().Len(suppliers, 1)
	id := suppliers[0].(map[string]interface{})["id"].(string)

	w, _ = suite.request("POST", "/v1/suppliers/"+id+"/negotiations", map[string]interface{}{
		"details":  "Desconto por volume",
		"outcomes": "5%",
	}, "en")
	suite.Require().Equal(http.StatusCreated, w.Code)

	w, response = suite.request("GET", "/v1/suppliers/"+id+"/negotiations", nil, "en")
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), data(response)["negotiations"], 1)

	w, _ = suite.request("GET", "/v1/prep-centers/"+id, nil, "en")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.request("POST", "/v1/prep-centers", map[string]interface{}{
		"name":      "FastPrep Services",
		"lead_time": "3 dias",
	}, "en")
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w, response = suite.request("POST", "/v1/prep-centers", map[string]interface{}{
		"name":      "Prep Norte",
		"lead_time": "4 dias",
		"location":  "Manaus, AM",
		"email":     "ops@prepnorte.com.br",
	}, "en")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	center := data(response)["partner"].(map[string]interface{})
	assert.Equal(suite.T(), "Manaus, AM", center["location"])

	w, _ = suite.request("POST", "/v1/prep-centers/"+center["id"].(string)+"/service-costs", map[string]interface{}{
		"service": "Etiquetagem",
		"cost":    1.2,
		"unit":    "unidade",
	}, "en")
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
