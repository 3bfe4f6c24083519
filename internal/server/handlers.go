package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"fortio.org/log"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/notation"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "palette_extract", "color_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and ToolErrorData naming the failing stage.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		kind := palette.Kind(err)
		log.Infof("Tool %s failed (%s): %v", params.Name, kind, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolErrorData{
			Kind:  kind,
			Error: err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads, decodes or fetches the image as needed
//  4. Calls the appropriate palette/imaging/notation function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Palette Extraction
	case "palette_extract":
		return s.handlePaletteExtract(args)
	case "palette_extract_url":
		return s.handlePaletteExtractURL(ctx, args)

	// Color Utilities
	case "color_convert":
		return s.handleColorConvert(args)
	case "palette_swatch":
		return s.handlePaletteSwatch(args)

	// Image Information
	case "image_info":
		return s.handleImageInfo(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", palette.ErrInvalidOptions, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, reporting malformed JSON as
// invalid options. Missing arguments decode as the zero value.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", palette.ErrInvalidOptions, err)
	}
	return nil
}

// === Palette Extraction Handlers ===

type extractionArgs struct {
	Notation       string          `json:"notation"`
	AlphaMode      string          `json:"alpha_mode"`
	Strategy       string          `json:"strategy"`
	MaxSampleArea  *float64        `json:"max_sample_area"`
	MergeThreshold float64         `json:"merge_threshold"`
	MaxColors      int             `json:"max_colors"`
	Clusters       int             `json:"clusters"`
	Region         *imaging.Region `json:"region,omitempty"`
	SmoothRadius   float64         `json:"smooth_radius"`
}

// options converts tool arguments to palette options, applying defaults
// for anything left unset.
func (a extractionArgs) options() (palette.Options, error) {
	opts := palette.DefaultOptions()
	opts.Notation = notation.Parse(a.Notation)

	var err error
	if opts.AlphaMode, err = palette.ParseAlphaMode(a.AlphaMode); err != nil {
		return opts, err
	}
	if opts.Strategy, err = palette.ParseStrategy(a.Strategy); err != nil {
		return opts, err
	}

	if a.MaxSampleArea != nil {
		if *a.MaxSampleArea < 0 {
			return opts, fmt.Errorf("%w: max_sample_area must be >= 0", palette.ErrInvalidOptions)
		}
		opts.Quantize.MaxSampleArea = *a.MaxSampleArea
	}
	if a.MergeThreshold < 0 || a.MaxColors < 0 || a.Clusters < 0 || a.SmoothRadius < 0 {
		return opts, fmt.Errorf("%w: numeric options must not be negative", palette.ErrInvalidOptions)
	}
	opts.Quantize.MergeThreshold = a.MergeThreshold
	opts.Quantize.MaxColors = a.MaxColors
	opts.Clusters = a.Clusters
	opts.Region = a.Region
	opts.SmoothRadius = a.SmoothRadius
	return opts, nil
}

type paletteExtractArgs struct {
	extractionArgs
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handlePaletteExtract(args json.RawMessage) (interface{}, error) {
	var a paletteExtractArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	switch {
	case a.Path != "" && a.ImageBase64 != "":
		return nil, fmt.Errorf("%w: provide either path or image_base64, not both", palette.ErrInvalidOptions)
	case a.Path != "":
		// Read on every call; a palette never comes from an earlier decode.
		data, err := imaging.ReadFile(a.Path)
		if err != nil {
			return nil, err
		}
		return s.extractor.Extract(data, opts)
	case a.ImageBase64 != "":
		data, err := decodeBase64(a.ImageBase64)
		if err != nil {
			return nil, err
		}
		return s.extractor.Extract(data, opts)
	default:
		return nil, fmt.Errorf("%w: path or image_base64 is required", palette.ErrInvalidOptions)
	}
}

// decodeBase64 accepts standard or URL-safe base64, padded or not, with an
// optional "data:<mime>;base64," prefix.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: image_base64 is not valid base64", palette.ErrInvalidOptions)
}

type paletteExtractURLArgs struct {
	extractionArgs
	URL string `json:"url"`
}

func (s *Server) handlePaletteExtractURL(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a paletteExtractURLArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.URL == "" {
		return nil, fmt.Errorf("%w: url is required", palette.ErrInvalidOptions)
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return s.extractor.ExtractFromURL(ctx, a.URL, opts)
}

// === Color Utility Handlers ===

type colorConvertArgs struct {
	Hex      string `json:"hex"`
	R        *int   `json:"r"`
	G        *int   `json:"g"`
	B        *int   `json:"b"`
	Notation string `json:"notation"`
}

// ColorConversion is the color_convert result.
type ColorConversion struct {
	RGB     pixel.RGBColor    `json:"rgb"`
	Formats map[string]string `json:"formats"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	c, err := a.color()
	if err != nil {
		return nil, err
	}

	result := &ColorConversion{RGB: c, Formats: make(map[string]string)}
	if a.Notation == "" || strings.EqualFold(strings.TrimSpace(a.Notation), "all") {
		for _, n := range notation.All() {
			result.Formats[n.String()] = notation.Format(c, n)
		}
		return result, nil
	}

	n := notation.Parse(a.Notation)
	result.Formats[n.String()] = notation.Format(c, n)
	return result, nil
}

func (a colorConvertArgs) color() (pixel.RGBColor, error) {
	if a.Hex != "" {
		c, err := notation.ParseHex(a.Hex)
		if err != nil {
			return c, fmt.Errorf("%w: %v", palette.ErrInvalidOptions, err)
		}
		return c, nil
	}

	if a.R == nil || a.G == nil || a.B == nil {
		return pixel.RGBColor{}, fmt.Errorf("%w: hex or all of r, g, b are required", palette.ErrInvalidOptions)
	}
	for _, v := range []int{*a.R, *a.G, *a.B} {
		if v < 0 || v > 255 {
			return pixel.RGBColor{}, fmt.Errorf("%w: channel value %d outside 0-255", palette.ErrInvalidOptions, v)
		}
	}
	return pixel.RGBColor{R: uint8(*a.R), G: uint8(*a.G), B: uint8(*a.B)}, nil
}

type paletteSwatchArgs struct {
	Colors []string `json:"colors"`
	Size   int      `json:"size"`
}

func (s *Server) handlePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a paletteSwatchArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Colors) == 0 {
		return nil, fmt.Errorf("%w: colors must not be empty", palette.ErrInvalidOptions)
	}

	colors := make([]pixel.RGBColor, len(a.Colors))
	for i, h := range a.Colors {
		c, err := notation.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: colors[%d]: %v", palette.ErrInvalidOptions, i, err)
		}
		colors[i] = c
	}
	return imaging.RenderSwatch(colors, a.Size)
}

// === Image Information Handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", palette.ErrInvalidOptions)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}
