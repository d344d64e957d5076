package ws

// Inbound frame types
const (
	JoinChannel  = "joinChannel"
	SendMessage  = "sendMessage"
	LeaveChannel = "leaveChannel"
)

// Outbound frame types
const (
	MessageEvent       = "message"
	ErrorEvent         = "error"
	JoinChannelSuccess = "joinChannelSuccess"
)
