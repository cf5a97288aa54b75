package interp

// convexMonotone implements the quadratic variant of the Hagan-West
// convex-monotone forward scheme. The ordinate at node i is the
// discrete (interval-average) forward over (xs[i-1], xs[i]]; ys[0] is
// ignored. Each section is a quadratic whose mean over the interval
// equals the discrete forward exactly, so the primitive at the nodes
// telescopes to the sum of interval forwards.
type convexMonotone struct {
	xs, ys []float64

	g0, g1 []float64 // section quadratic weights
	left   float64   // boundary value at the first node
	prim   []float64 // cumulative integral at nodes
}

func (cm *convexMonotone) Update() error {
	if err := checkNodes(cm.xs, cm.ys); err != nil {
		return err
	}

	n := len(cm.xs) - 1 // sections
	fd := cm.ys         // fd[i] is the discrete forward of section i, fd[0] unused

	// node instantaneous forwards: length-weighted averages of the
	// neighbouring discrete forwards, with symmetric end conditions
	f := make([]float64, n+1)
	if n == 1 {
		f[0], f[1] = fd[1], fd[1]
	} else {
		for i := 1; i < n; i++ {
			hl := cm.xs[i] - cm.xs[i-1]
			hr := cm.xs[i+1] - cm.xs[i]
			f[i] = (hl*fd[i+1] + hr*fd[i]) / (hl + hr)
		}
		f[0] = fd[1] - 0.5*(f[1]-fd[1])
		f[n] = fd[n] - 0.5*(f[n-1]-fd[n])
	}
	cm.left = f[0]

	cm.g0 = resize(cm.g0, n+1)
	cm.g1 = resize(cm.g1, n+1)
	cm.prim = resize(cm.prim, n+1)
	cm.prim[0] = 0
	for i := 1; i <= n; i++ {
		cm.g0[i] = f[i-1] - fd[i]
		cm.g1[i] = f[i] - fd[i]
		cm.prim[i] = cm.prim[i-1] + fd[i]*(cm.xs[i]-cm.xs[i-1])
	}
	return nil
}

func (cm *convexMonotone) MaxX() float64 { return cm.xs[len(cm.xs)-1] }

func (cm *convexMonotone) Value(x float64) float64 {
	if x <= cm.xs[0] {
		return cm.left
	}
	last := len(cm.xs) - 1
	if x >= cm.xs[last] {
		return cm.ys[last]
	}
	i := section(cm.xs, x) + 1
	u := (x - cm.xs[i-1]) / (cm.xs[i] - cm.xs[i-1])
	return cm.ys[i] + cm.g0[i]*(1-4*u+3*u*u) + cm.g1[i]*(3*u*u-2*u)
}

func (cm *convexMonotone) Derivative(x float64) float64 {
	last := len(cm.xs) - 1
	if x <= cm.xs[0] || x >= cm.xs[last] {
		return 0
	}
	i := section(cm.xs, x) + 1
	h := cm.xs[i] - cm.xs[i-1]
	u := (x - cm.xs[i-1]) / h
	return (cm.g0[i]*(6*u-4) + cm.g1[i]*(6*u-2)) / h
}

func (cm *convexMonotone) Primitive(x float64) float64 {
	if x <= cm.xs[0] {
		return cm.left * (x - cm.xs[0])
	}
	last := len(cm.xs) - 1
	if x >= cm.xs[last] {
		return cm.prim[last] + cm.ys[last]*(x-cm.xs[last])
	}
	i := section(cm.xs, x) + 1
	h := cm.xs[i] - cm.xs[i-1]
	u := (x - cm.xs[i-1]) / h
	g := cm.g0[i]*u*(1-2*u+u*u) + cm.g1[i]*u*u*(u-1)
	return cm.prim[i-1] + h*(cm.ys[i]*u+g)
}
