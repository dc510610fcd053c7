package dto

// ContactRequest is the payload a prospective tenant sends about a room.
type ContactRequest struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// ContactMessage is the normalized message relayed to the notification worker.
type ContactMessage struct {
	RoomID  string `json:"room_id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// ContactResponse acknowledges a contact request.
type ContactResponse struct {
	OK      bool   `json:"ok"`
	RoomID  string `json:"roomId"`
	Relayed bool   `json:"relayed"`
}
