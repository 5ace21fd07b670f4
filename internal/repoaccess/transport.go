package repoaccess

import (
	"fmt"
	"strings"
)

const (
	transportCLIStringConstant           = "cli"
	transportSSHStringConstant           = "ssh"
	transportHTTPSStringConstant         = "https"
	unsupportedTransportTemplateConstant = "unsupported transport: %q"
	unsupportedOperationTemplateConstant = "operation %s is not supported over the %s transport"
)

// Transport selects the mechanism used for GitHub repository operations.
type Transport string

// Supported transport values.
const (
	TransportCLI   Transport = Transport(transportCLIStringConstant)
	TransportSSH   Transport = Transport(transportSSHStringConstant)
	TransportHTTPS Transport = Transport(transportHTTPSStringConstant)
)

// UnsupportedTransportError reports a transport value outside the supported set.
type UnsupportedTransportError struct {
	Value string
}

// Error describes the unsupported transport.
func (transportError UnsupportedTransportError) Error() string {
	return fmt.Sprintf(unsupportedTransportTemplateConstant, transportError.Value)
}

// UnsupportedOperationError reports an operation the selected transport cannot serve.
type UnsupportedOperationError struct {
	Operation OperationName
	Transport Transport
}

// Error describes the unsupported operation.
func (operationError UnsupportedOperationError) Error() string {
	return fmt.Sprintf(unsupportedOperationTemplateConstant, operationError.Operation, operationError.Transport)
}

// ParseTransport normalizes a textual transport value.
func ParseTransport(candidate string) (Transport, error) {
	normalized := Transport(strings.ToLower(strings.TrimSpace(candidate)))
	switch normalized {
	case TransportCLI, TransportSSH, TransportHTTPS:
		return normalized, nil
	}
	return "", UnsupportedTransportError{Value: candidate}
}

// SupportedTransports lists the accepted transport values for usage strings.
func SupportedTransports() []string {
	return []string{transportCLIStringConstant, transportSSHStringConstant, transportHTTPSStringConstant}
}
