package arima

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidOrder     = errors.New("invalid model order")
	ErrInsufficientData = errors.New("insufficient data points for the specified order")
	ErrNotFitted        = errors.New("model must be fitted before forecasting")
	ErrFitFailed        = errors.New("model fit did not converge to finite parameters")
)

const (
	maxIterations = 200
	tolerance     = 1e-8
	minStep       = 1e-6
	coeffBound    = 0.99
	initialMA     = 0.1
	// minExtraObservations is added to p+d+q to get the shortest series Fit
	// accepts: the differenced series must be longer than p+q+1.
	minExtraObservations = 2
)

// Order is the (p, d, q) configuration of the model.
type Order struct {
	P int `json:"p"` // autoregressive terms
	D int `json:"d"` // differencing passes
	Q int `json:"q"` // moving-average terms
}

// Validate rejects negative orders.
func (o Order) Validate() error {
	if o.P < 0 || o.D < 0 || o.Q < 0 {
		return fmt.Errorf("%w: (%d,%d,%d)", ErrInvalidOrder, o.P, o.D, o.Q)
	}
	return nil
}

// MinObservations is the shortest series Fit accepts for this order.
func (o Order) MinObservations() int {
	return o.P + o.D + o.Q + minExtraObservations
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model is an ARIMA model. Create it with New and call Fit before Forecast.
type Model struct {
	Order     Order
	ARCoeffs  []float64
	MACoeffs  []float64
	Intercept float64
	Variance  float64
	LogLik    float64
	AIC       float64
	BIC       float64
	NObs      int

	fitted    bool
	diffTail  []float64 // last P values of the differenced series
	residTail []float64 // last Q residuals
	levels    []float64 // last value of the series at each differencing level
	residuals []float64
}

// New creates an unfitted model. Coefficients are allocated by Fit once the
// order is validated.
func New(order Order) *Model {
	return &Model{Order: order}
}

// Fit estimates the model parameters from values, which must be regularly spaced.
//
// The differenced series is standardized before estimation so the result does
// not depend on the scale of the data. Pure autoregressive models are solved
// in closed form by conditional least squares; models with moving-average
// terms start from that solution and are refined by a line-searched descent
// on the conditional sum of squares.
func (m *Model) Fit(values []float64) error {
	if err := m.Order.Validate(); err != nil {
		return err
	}
	if len(values) < m.Order.MinObservations() {
		return fmt.Errorf("%w: need %d, got %d", ErrInsufficientData, m.Order.MinObservations(), len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite", i)
		}
	}

	levels := make([]float64, m.Order.D)
	y := append([]float64(nil), values...)
	for k := 0; k < m.Order.D; k++ {
		levels[k] = y[len(y)-1]
		y = Diff(y)
	}

	m.ARCoeffs = make([]float64, m.Order.P)
	m.MACoeffs = make([]float64, m.Order.Q)
	m.levels = levels
	m.NObs = len(values)

	mu, sd := mean(y), stdDev(y)
	if (m.Order.P == 0 && m.Order.Q == 0) || sd == 0 {
		m.fitWhiteNoise(y)
	} else {
		z := make([]float64, len(y))
		for i, v := range y {
			z[i] = (v - mu) / sd
		}

		if m.Order.P > 0 {
			copy(m.ARCoeffs, m.initialAR(z))
		}
		if m.Order.Q > 0 {
			for i := range m.MACoeffs {
				m.MACoeffs[i] = initialMA
			}
			m.Intercept = 0
			m.optimizeCSS(z)
		}

		m.Intercept = mu
		m.residuals = make([]float64, len(y))
		sse := m.residualsInto(y, m.residuals, max(m.Order.P, m.Order.Q))
		m.setVariance(sse, len(y)-max(m.Order.P, m.Order.Q))
	}

	if !m.finite() {
		return ErrFitFailed
	}

	m.diffTail = tail(y, m.Order.P)
	m.residTail = tail(m.residuals, m.Order.Q)
	m.informationCriteria()
	m.fitted = true

	return nil
}

func (m *Model) fitWhiteNoise(y []float64) {
	n := len(y)
	m.Intercept = mean(y)
	m.residuals = make([]float64, n)
	sse := 0.0
	for i, v := range y {
		m.residuals[i] = v - m.Intercept
		sse += m.residuals[i] * m.residuals[i]
	}
	if n > 1 {
		m.Variance = sse / float64(n-1)
	}
}

func (m *Model) setVariance(sse float64, count int) {
	p, q := m.Order.P, m.Order.Q
	switch {
	case count > p+q+1:
		m.Variance = sse / float64(count-p-q-1)
	case count > 0:
		m.Variance = sse / float64(count)
	}
}

// initialAR returns stationary AR coefficients for the standardized series z:
// the least squares solution when it is stationary, Yule-Walker otherwise.
func (m *Model) initialAR(z []float64) []float64 {
	p := m.Order.P
	if phi := leastSquaresAR(z, p); phi != nil && stationary(phi) {
		return phi
	}
	if phi := yuleWalker(ACF(z, p), p); phi != nil && stationary(phi) {
		return phi
	}
	return make([]float64, p)
}

// optimizeCSS refines the coefficients of the standardized series z by
// gradient descent on the conditional sum of squares. Steps are halved until
// they lower the sum and keep the model stationary and invertible.
func (m *Model) optimizeCSS(z []float64) {
	n := len(z)
	p, q := m.Order.P, m.Order.Q
	start := max(p, q)
	count := float64(n - start)
	if count <= 0 {
		return
	}

	residuals := make([]float64, n)
	sse := m.residualsInto(z, residuals, start)
	step := 0.5

	for iter := 0; iter < maxIterations; iter++ {
		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * z[t-i-1] / count
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1] / count
			}
		}

		prevAR := append([]float64(nil), m.ARCoeffs...)
		prevMA := append([]float64(nil), m.MACoeffs...)
		trial := make([]float64, n)
		next := sse
		accepted := false

		for ; step >= minStep; step /= 2 {
			for i := range m.ARCoeffs {
				m.ARCoeffs[i] = clamp(prevAR[i]-step*arGrad[i], coeffBound)
			}
			for i := range m.MACoeffs {
				m.MACoeffs[i] = clamp(prevMA[i]-step*maGrad[i], coeffBound)
			}
			if stationary(m.ARCoeffs) && invertible(m.MACoeffs) {
				if next = m.residualsInto(z, trial, start); next < sse {
					accepted = true
					break
				}
			}
		}
		if !accepted {
			copy(m.ARCoeffs, prevAR)
			copy(m.MACoeffs, prevMA)
			break
		}

		residuals = trial
		improvement := sse - next
		sse = next
		step = math.Min(step*2, 1)
		if improvement < tolerance*math.Max(sse, 1) {
			break
		}
	}
}

// residualsInto computes one-step residuals from index start and returns their sum of squares.
func (m *Model) residualsInto(y, residuals []float64, start int) float64 {
	sse := 0.0
	for t := 0; t < len(y); t++ {
		if t < start {
			residuals[t] = y[t] - m.Intercept
			continue
		}
		residuals[t] = y[t] - m.predict(y, residuals, t)
		sse += residuals[t] * residuals[t]
	}
	return sse
}

func (m *Model) predict(y, residuals []float64, t int) float64 {
	pred := m.Intercept
	for i := 0; i < m.Order.P && t-i-1 >= 0; i++ {
		pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
	}
	for i := 0; i < m.Order.Q && t-i-1 >= 0; i++ {
		pred += m.MACoeffs[i] * residuals[t-i-1]
	}
	return pred
}

func (m *Model) informationCriteria() {
	n := float64(len(m.residuals))
	k := float64(m.Order.P + m.Order.Q + 1)

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}
	// undefined for an exact fit; left at zero so the state stays serializable
	if m.Variance <= 0 {
		m.LogLik, m.AIC, m.BIC = 0, 0, 0
		return
	}
	m.LogLik = -n/2*math.Log(2*math.Pi) - n/2*math.Log(m.Variance) - sse/(2*m.Variance)
	m.AIC = -2*m.LogLik + 2*k
	m.BIC = -2*m.LogLik + k*math.Log(n)
}

// Forecast predicts the next steps values on the original scale.
func (m *Model) Forecast(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	p, q := len(m.diffTail), len(m.residTail)
	y := make([]float64, p+steps)
	copy(y, m.diffTail)
	residuals := make([]float64, q+steps)
	copy(residuals, m.residTail)

	out := make([]float64, steps)
	for h := 0; h < steps; h++ {
		pred := m.Intercept
		for i := 0; i < m.Order.P; i++ {
			pred += m.ARCoeffs[i] * (y[p+h-i-1] - m.Intercept)
		}
		for i := 0; i < m.Order.Q; i++ {
			// future shocks have expectation zero
			pred += m.MACoeffs[i] * residuals[q+h-i-1]
		}
		y[p+h] = pred
		out[h] = pred
	}

	return m.integrate(out), nil
}

// integrate undoes the differencing passes, innermost first.
func (m *Model) integrate(forecast []float64) []float64 {
	result := append([]float64(nil), forecast...)
	for k := len(m.levels) - 1; k >= 0; k-- {
		prev := m.levels[k]
		for j := range result {
			result[j] += prev
			prev = result[j]
		}
	}
	return result
}

// Residuals returns a copy of the in-sample residuals of the differenced series.
func (m *Model) Residuals() []float64 {
	return append([]float64(nil), m.residuals...)
}

// Fitted reports whether Fit succeeded or the model was restored from a State.
func (m *Model) Fitted() bool {
	return m.fitted
}

// Summary formats the fitted parameters on one line.
func (m *Model) Summary() string {
	return fmt.Sprintf("%s ar=%v ma=%v intercept=%.4f sigma2=%.4f aic=%.2f bic=%.2f nobs=%d",
		m.Order, m.ARCoeffs, m.MACoeffs, m.Intercept, m.Variance, m.AIC, m.BIC, m.NObs)
}

func (m *Model) finite() bool {
	check := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	return check(m.ARCoeffs...) && check(m.MACoeffs...) && check(m.Intercept, m.Variance)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}

func tail(values []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n > len(values) {
		n = len(values)
	}
	return append([]float64(nil), values[len(values)-n:]...)
}
