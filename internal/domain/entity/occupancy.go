package entity

// OccupancyStatus summarizes how full a shift is.
type OccupancyStatus string

const (
	OccupancyAvailable OccupancyStatus = "available"
	OccupancyBusy      OccupancyStatus = "busy"
	OccupancyFull      OccupancyStatus = "full"

	busyThreshold = 0.5
)

// ClassifyOccupancy maps a booked count against capacity. A zero-capacity shift is
// never full and, having no ratio, is reported as available.
func ClassifyOccupancy(booked, maxPatients int) OccupancyStatus {
	if maxPatients <= 0 {
		return OccupancyAvailable
	}
	if booked >= maxPatients {
		return OccupancyFull
	}
	if float64(booked)/float64(maxPatients) >= busyThreshold {
		return OccupancyBusy
	}
	return OccupancyAvailable
}
