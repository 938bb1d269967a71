package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/c9s/bbands/pkg/datasource/jsonsource"
	"github.com/c9s/bbands/pkg/indicator"
	"github.com/c9s/bbands/pkg/metrics"
	"github.com/c9s/bbands/pkg/style"
	"github.com/c9s/bbands/pkg/types"
)

type bollingerResponse struct {
	*indicator.BOLLResult

	Bars   []types.Bar          `json:"bars,omitempty"`
	Params indicator.BOLLParams `json:"params"`
	Style  style.BandsStyle     `json:"style"`
}

type bollingerRequest struct {
	// Bars uses the ohlcv.json layout, see jsonsource.ParseBars
	Bars   json.RawMessage `json:"bars"`
	Params json.RawMessage `json:"params"`
}

func (s *Server) getDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"params": s.Config.Bollinger,
		"style":  s.Config.Style,
	})
}

func (s *Server) getBollinger(c *gin.Context) {
	params, err := parseQueryParams(c, s.Config.Bollinger)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bars, err := s.Loader.LoadBars(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("unable to load bars")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.respondBollinger(c, bars, params)
}

func (s *Server) postBollinger(c *gin.Context) {
	var req bollingerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	params := s.Config.Bollinger
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errors.Wrap(indicator.ErrInvalidParameter, err.Error()).Error()})
			return
		}
	}

	var bars []types.Bar
	if len(req.Bars) > 0 {
		var err error
		bars, err = jsonsource.ParseBars(req.Bars)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.respondBollinger(c, bars, params)
}

func (s *Server) respondBollinger(c *gin.Context, bars []types.Bar, params indicator.BOLLParams) {
	startTime := time.Now()
	result, err := indicator.ComputeBOLL(bars, params)
	metrics.ObserveComputation("http", len(bars), startTime, err)

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, indicator.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	log.Debugf("computed bollinger bands over %d bars: %+v", len(bars), params)

	c.JSON(http.StatusOK, bollingerResponse{
		BOLLResult: result,
		Bars:       bars,
		Params:     params,
		Style:      s.Config.Style,
	})
}

// parseQueryParams overrides the defaults with the query string.
// Lengths and offsets must be integers; "2.5" is rejected rather than truncated.
func parseQueryParams(c *gin.Context, defaults indicator.BOLLParams) (indicator.BOLLParams, error) {
	params := defaults

	if v, ok := c.GetQuery("length"); ok {
		length, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.Wrapf(indicator.ErrInvalidParameter, "length %q is not an integer", v)
		}
		params.Length = length
	}

	if v, ok := c.GetQuery("stdDev"); ok {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.Wrapf(indicator.ErrInvalidParameter, "stdDev %q is not a number", v)
		}
		params.K = k
	}

	if v, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.Wrapf(indicator.ErrInvalidParameter, "offset %q is not an integer", v)
		}
		params.Offset = offset
	}

	if v, ok := c.GetQuery("source"); ok {
		source, err := types.ParseSourceType(v)
		if err != nil {
			return params, errors.Wrap(indicator.ErrInvalidParameter, err.Error())
		}
		params.Source = source
	}

	if v, ok := c.GetQuery("maType"); ok {
		params.MAType = v
	}

	return params, nil
}
