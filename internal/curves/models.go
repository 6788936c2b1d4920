package curves

import "math"

const (
	btsBreak     = 0.6
	btsSlope     = 1.6
	btsPostLoad  = 0.48
	btsPostSlope = 0.02

	clayUltimate = 88.0
	clayStiffC   = 0.3

	consolK     = 10.0
	consolEnd   = 0.7
	consolDrop  = 0.1
	consolFinal = 0.9
	logFloor    = 1e-9

	cementYield     = 0.5
	cementModulus   = 280.0
	cementPeakGain  = 20.0
	cementPeakDecay = 2.0
	cementSoftStart = 6.0
	cementPeak      = 147.0
	cementSoftRate  = 0.3
	cementResidual  = 60.0
)

// BTSLoadDisplacement is the normalised load on a Brazilian disk: a stiff
// linear rise up to displacement 0.6, then a nearly flat post-failure branch.
// The post-failure branch starts at 0.48, half the load reached at 0.6, which
// is the load drop shown when the disk splits.
func BTSLoadDisplacement(x float64) float64 {
	if x < btsBreak {
		return btsSlope * x
	}
	return btsPostLoad + btsPostSlope*(x-btsBreak)
}

// ClayStressStrain is the hyperbolic model q = q_ult·x/(C+x).
// Initial stiffness is q_ult/C. Negative strain gives zero.
func ClayStressStrain(x float64) float64 {
	if x < 0 {
		return 0
	}
	return clayUltimate * (x / (clayStiffC + x))
}

// ConsolidationVolume is the normalised sample volume during consolidation.
// It decays logarithmically from 1.0 to 0.9 over t in [0, 0.7) and stays at
// 0.9 afterwards.
func ConsolidationVolume(x float64) float64 {
	if x < 0 {
		return 1.0
	}
	if x >= consolEnd {
		return consolFinal
	}

	in := consolK*x + 1
	if in <= 0 {
		in = logFloor
	}
	inEnd := consolK*consolEnd + 1
	if inEnd <= 0 {
		inEnd = logFloor
	}

	den := math.Log(inEnd)
	if den == 0 {
		return 1.0 - consolDrop*(consolK*x/(consolK*consolEnd))
	}
	return 1.0 - consolDrop*(math.Log(in)/den)
}

// CementedClayStressStrain is the deviator stress of a cemented clay: elastic
// up to 0.5% strain, a damped exponential hump up to 6%, then exponential
// softening that never drops below the residual stress.
func CementedClayStressStrain(x float64) float64 {
	switch {
	case x < cementYield:
		return cementModulus * x
	case x <= cementSoftStart:
		elastic := cementModulus * cementYield
		p := x - cementYield
		return elastic + cementPeakGain*p*math.Exp(-p/cementPeakDecay)
	default:
		softened := cementPeak * math.Exp(-cementSoftRate*(x-cementSoftStart))
		return math.Max(softened, cementResidual)
	}
}
