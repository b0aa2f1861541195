package arima

import (
	"errors"
	"fmt"
)

// State is the serializable form of a fitted model: its parameters plus the
// tail of the observed series needed to forecast.
type State struct {
	Order     Order     `json:"order"`
	ARCoeffs  []float64 `json:"ar"`
	MACoeffs  []float64 `json:"ma"`
	Intercept float64   `json:"intercept"`
	Variance  float64   `json:"sigma2"`
	LogLik    float64   `json:"log_likelihood"`
	AIC       float64   `json:"aic"`
	BIC       float64   `json:"bic"`
	NObs      int       `json:"nobs"`
	DiffTail  []float64 `json:"diff_tail"`
	ResidTail []float64 `json:"resid_tail"`
	Levels    []float64 `json:"levels"`
}

// State exports the fitted model.
func (m *Model) State() (*State, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return &State{
		Order:     m.Order,
		ARCoeffs:  append([]float64(nil), m.ARCoeffs...),
		MACoeffs:  append([]float64(nil), m.MACoeffs...),
		Intercept: m.Intercept,
		Variance:  m.Variance,
		LogLik:    m.LogLik,
		AIC:       m.AIC,
		BIC:       m.BIC,
		NObs:      m.NObs,
		DiffTail:  append([]float64(nil), m.diffTail...),
		ResidTail: append([]float64(nil), m.residTail...),
		Levels:    append([]float64(nil), m.levels...),
	}, nil
}

// FromState restores a fitted model that forecasts like the exported one.
func FromState(s *State) (*Model, error) {
	if s == nil {
		return nil, errors.New("nil model state")
	}
	if err := s.Order.Validate(); err != nil {
		return nil, err
	}
	switch {
	case len(s.ARCoeffs) != s.Order.P, len(s.DiffTail) != s.Order.P:
		return nil, fmt.Errorf("state has %d AR coefficients and %d tail values for p=%d", len(s.ARCoeffs), len(s.DiffTail), s.Order.P)
	case len(s.MACoeffs) != s.Order.Q, len(s.ResidTail) != s.Order.Q:
		return nil, fmt.Errorf("state has %d MA coefficients and %d residuals for q=%d", len(s.MACoeffs), len(s.ResidTail), s.Order.Q)
	case len(s.Levels) != s.Order.D:
		return nil, fmt.Errorf("state has %d levels for d=%d", len(s.Levels), s.Order.D)
	}

	m := New(s.Order)
	m.ARCoeffs = append([]float64(nil), s.ARCoeffs...)
	m.MACoeffs = append([]float64(nil), s.MACoeffs...)
	m.Intercept = s.Intercept
	m.Variance = s.Variance
	m.LogLik = s.LogLik
	m.AIC = s.AIC
	m.BIC = s.BIC
	m.NObs = s.NObs
	m.diffTail = append([]float64(nil), s.DiffTail...)
	m.residTail = append([]float64(nil), s.ResidTail...)
	m.levels = append([]float64(nil), s.Levels...)
	m.fitted = true

	return m, nil
}
