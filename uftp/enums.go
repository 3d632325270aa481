package uftp

import "fmt"

// AcceptedDisputed indicates whether the AGR accepts the settlement
// details provided by the DSO or disputes them.
type AcceptedDisputed string

const (
	DispositionAccepted AcceptedDisputed = "Accepted"
	DispositionDisputed AcceptedDisputed = "Disputed"
)

func (v AcceptedDisputed) validate(field string) error {
	switch v {
	case DispositionAccepted, DispositionDisputed:
		return nil
	}
	return fmt.Errorf("%w: %s must be Accepted or Disputed, got %q", ErrValidation, field, v)
}

// AvailableRequested is the disposition of an ISP in a FlexRequest:
// flexibility is either merely available or explicitly requested.
type AvailableRequested string

const (
	DispositionAvailable AvailableRequested = "Available"
	DispositionRequested AvailableRequested = "Requested"
)

func (v AvailableRequested) validate(field string) error {
	switch v {
	case "", DispositionAvailable, DispositionRequested:
		return nil
	}
	return fmt.Errorf("%w: %s must be Available or Requested, got %q", ErrValidation, field, v)
}

// RedispatchBy indicates which party is responsible for redispatch on a
// congestion point.
type RedispatchBy string

const (
	RedispatchByAGR RedispatchBy = "AGR"
	RedispatchByDSO RedispatchBy = "DSO"
)

func (v RedispatchBy) validate(field string, required bool) error {
	switch v {
	case RedispatchByAGR, RedispatchByDSO:
		return nil
	case "":
		if !required {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be AGR or DSO, got %q", ErrValidation, field, v)
}

// MeteringProfileType identifies what kind of metering data a profile
// carries.
type MeteringProfileType string

const (
	// ProfilePower is the average active power during each ISP,
	// considering both import and export energy.
	ProfilePower MeteringProfileType = "Power"
	// ProfileImportEnergy is the imported active energy consumed during
	// each ISP.
	ProfileImportEnergy MeteringProfileType = "ImportEnergy"
	// ProfileExportEnergy is the exported active energy generated during
	// each ISP.
	ProfileExportEnergy MeteringProfileType = "ExportEnergy"
	// ProfileImportMeterReading is the cumulative imported energy meter
	// reading at the end of each ISP.
	ProfileImportMeterReading MeteringProfileType = "ImportMeterReading"
	// ProfileExportMeterReading is the cumulative exported energy meter
	// reading at the end of each ISP.
	ProfileExportMeterReading MeteringProfileType = "ExportMeterReading"
)

func (v MeteringProfileType) validate(field string) error {
	switch v {
	case ProfilePower, ProfileImportEnergy, ProfileExportEnergy,
		ProfileImportMeterReading, ProfileExportMeterReading:
		return nil
	}
	return fmt.Errorf("%w: %s has unknown profile type %q", ErrValidation, field, v)
}

// MeteringUnit is the unit of the values in a metering profile. kW goes
// with the Power profile, kWh with the energy profiles.
type MeteringUnit string

const (
	UnitKW  MeteringUnit = "kW"
	UnitKWH MeteringUnit = "kWh"
)

func (v MeteringUnit) validate(field string) error {
	switch v {
	case UnitKW, UnitKWH:
		return nil
	}
	return fmt.Errorf("%w: %s must be kW or kWh, got %q", ErrValidation, field, v)
}
