package dto

type SlotResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Hour  int    `json:"hour"`
}

type AvailableSlotsResponse struct {
	DoctorID       string         `json:"doctor_id"`
	Date           string         `json:"date"`
	AvailableSlots []SlotResponse `json:"available_slots"`
	BookedSlots    []string       `json:"booked_slots"`
	TotalSlots     int            `json:"total_slots"`
	AvailableCount int            `json:"available_count"`
}
