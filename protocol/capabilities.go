package protocol

// TransportCmdID names a transport-level command that precedes a command
// block (spec.md §6). The core never reads the transport itself; the
// external collaborator demultiplexes these and forwards only submit-cmd
// payloads to the decoder. Listed here so capability negotiation and fence
// creation (which DO originate inside the core) share the same vocabulary
// as the transport.
type TransportCmdID uint32

const (
	CmdCreateRenderer TransportCmdID = iota + 1
	CmdSubmitCmd
	CmdCreateResource
	CmdResourceUnref
	CmdTransferGet
	CmdTransferPut
	CmdBusyWait
	CmdSendCaps
	CmdSendCaps2
	CmdCreateFence
	CmdPing
)

// TransportHeader precedes every command block (spec.md §6).
type TransportHeader struct {
	LengthDW uint32
	CmdID    TransportCmdID
}

// FormatCaps is a per-pixel-format capability bitmap reported in v1
// capabilities: which of sampler/render/vertex-bind usages the host GL
// driver actually supports for that format.
type FormatCaps struct {
	Sampler bool
	Render  bool
	Vertex  bool // v2 only; zero value in v1 replies (see CapabilitiesV2)
}

// Capabilities is the v1 capability struct reported on send_caps.
// Populated once at renderer init from live GL queries (spec.md §6).
type Capabilities struct {
	MaxTextureArrayLayers uint32
	MaxRenderTargets      uint32
	MaxSamples            uint32
	MaxDualSourceRTs      uint32
	MaxTBOSize            uint32
	MaxViewports          uint32
	MaxUBOBlocks          uint32
	GLSLLevel             uint32
	PrimitiveMask         uint32
	Formats               map[uint32]FormatCaps
}

// CapabilitiesV2 extends Capabilities with the per-format vertex-bind
// bitmap added by the original renderer's send_caps2 (see SPEC_FULL.md §4):
// v1 only reports sampler/render support per format, v2 additionally
// reports which formats the GL driver accepts as vertex-element sources.
type CapabilitiesV2 struct {
	Capabilities
}
