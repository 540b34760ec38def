package domain

const (
	MinAllowedMinutes = 0
	MaxAllowedMinutes = 180
)

// ThresholdSetting is the allowed visit length in whole minutes.
type ThresholdSetting int

func (t ThresholdSetting) Minutes() int {
	return int(t)
}

func (t ThresholdSetting) InRange() bool {
	return t >= MinAllowedMinutes && t <= MaxAllowedMinutes
}

type ThresholdStore interface {
	Get() ThresholdSetting
	Set(raw any) (ThresholdSetting, error)
}
