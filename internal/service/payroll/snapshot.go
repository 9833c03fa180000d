package payroll

import (
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/shopspring/decimal"
)

// capsInCLP converts UF-denominated caps to money at the resolved UF
// value. Rounded here, once: computations and the snapshot must see the
// same cap or replays drift by cents.
func capsInCLP(caps legalparams.ContributionCaps, ufValue decimal.Decimal) legalparams.SnapshotCaps {
	return legalparams.SnapshotCaps{
		PensionCLP:    roundMoney(caps.PensionUF.Mul(ufValue)),
		HealthCLP:     roundMoney(caps.HealthUF.Mul(ufValue)),
		WorkInjuryCLP: roundMoney(caps.WorkInjuryUF.Mul(ufValue)),
		AFCCLP:        roundMoney(caps.AFCUF.Mul(ufValue)),
	}
}

// buildSnapshot assembles the provenance record attached to every result:
// version metadata, the references used, derived CLP caps and the payload
// itself. Pure data assembly, no store access.
func buildSnapshot(v legalparams.ParameterVersion, refs legalparams.FxReferences, capturedAt time.Time) legalparams.ParametersSnapshot {
	return legalparams.ParametersSnapshot{
		VersionID:      v.ID,
		VersionName:    v.Name,
		EffectiveFrom:  v.EffectiveFrom,
		EffectiveUntil: v.EffectiveUntil,
		References:     refs,
		CapsCLP:        capsInCLP(v.Parameters.Caps, refs.UFValue),
		Parameters:     v.Parameters,
		CapturedAt:     capturedAt,
	}
}
