package arima

import "math"

// Diff returns the first difference of values.
func Diff(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// ACF returns the sample autocorrelations of values for lags 0..maxLag.
// A constant series has no defined autocorrelation and yields nil.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mu := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - mu) * (v - mu)
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mu) * (values[i-k] - mu)
		}
		acf[k] = sum / variance
	}
	return acf
}

// yuleWalker solves the Yule-Walker equations for AR coefficients with the
// Levinson-Durbin recursion.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		if v <= 0 {
			break
		}
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
	}

	return phi
}

// stdDev returns the population standard deviation of values.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - mu) * (v - mu)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// leastSquaresAR regresses z[t] on z[t-1..t-p] without an intercept. It
// returns nil when the normal equations are singular.
func leastSquaresAR(z []float64, p int) []float64 {
	if p <= 0 || len(z) <= p {
		return nil
	}

	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)
	for t := p; t < len(z); t++ {
		for i := 0; i < p; i++ {
			xty[i] += z[t-i-1] * z[t]
			for j := 0; j < p; j++ {
				xtx[i][j] += z[t-i-1] * z[t-j-1]
			}
		}
	}

	return solve(xtx, xty)
}

// solve solves a*x = b by Gaussian elimination with partial pivoting. a and b
// are overwritten.
func solve(a [][]float64, b []float64) []float64 {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-10 {
			return nil
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x
}

// stationary reports whether the AR polynomial 1 - phi[0]B - ... - phi[p-1]B^p
// has all its roots outside the unit circle. It runs the Levinson-Durbin
// recursion backwards and checks every partial autocorrelation is below one
// in magnitude.
func stationary(phi []float64) bool {
	a := append([]float64(nil), phi...)
	for k := len(a) - 1; k >= 0; k-- {
		r := a[k]
		if math.IsNaN(r) || math.Abs(r) >= 1 {
			return false
		}
		if k == 0 {
			break
		}
		denom := 1 - r*r
		next := make([]float64, k)
		for j := 0; j < k; j++ {
			next[j] = (a[j] + r*a[k-1-j]) / denom
		}
		a = next
	}
	return true
}

// invertible reports whether the MA polynomial 1 + theta[0]B + ... has all its
// roots outside the unit circle.
func invertible(theta []float64) bool {
	negated := make([]float64, len(theta))
	for i, v := range theta {
		negated[i] = -v
	}
	return stationary(negated)
}
