// Package arima fits ARIMA(p, d, q) models to a regularly spaced series and
// forecasts it forward.
//
// Coefficients are estimated by conditional sum of squares: AR terms start
// from the Yule-Walker solution of the differenced series, MA terms from a
// small constant, and both are refined by gradient steps bounded to
// (-0.99, 0.99).
//
//	model := arima.New(arima.Order{P: 2, D: 1, Q: 0})
//	if err := model.Fit(values); err != nil {
//		return err
//	}
//	next, err := model.Forecast(12)
//
// A fitted model exports the minimal State needed to forecast again, so it can
// be serialized and restored with FromState.
package arima
