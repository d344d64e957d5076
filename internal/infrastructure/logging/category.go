package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	RabbitMQ        Category = "RabbitMQ"
	MongoDB         Category = "MongoDB"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	WebSocket       Category = "WebSocket"
	Registry        Category = "Registry"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// WebSocket
	Connect    SubCategory = "Connect"
	Disconnect SubCategory = "Disconnect"
	Inbound    SubCategory = "Inbound"
	Delivery   SubCategory = "Delivery"

	// Events
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"
	Audit   SubCategory = "Audit"
)

const (
	AppName       ExtraKey = "AppName"
	LoggerName    ExtraKey = "Logger"
	ClientIp      ExtraKey = "ClientIp"
	Method        ExtraKey = "Method"
	StatusCode    ExtraKey = "StatusCode"
	BodySize      ExtraKey = "BodySize"
	Path          ExtraKey = "Path"
	Latency       ExtraKey = "Latency"
	ErrorMessage  ExtraKey = "ErrorMessage"
	SessionID     ExtraKey = "SessionId"
	ParticipantID ExtraKey = "ParticipantId"
	ChannelID     ExtraKey = "ChannelId"
	EventType     ExtraKey = "EventType"
)
