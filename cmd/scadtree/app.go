package main

import (
	"log"

	"github.com/chazu/scadtree/pkg/engine"
	"github.com/chazu/scadtree/pkg/kernel"
	"github.com/chazu/scadtree/pkg/kernel/sdfx"
	"github.com/chazu/scadtree/pkg/scene"
	"github.com/chazu/scadtree/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to meshes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs scripts through the engine and, for previews, the kernel.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	log    *log.Logger
}

// MeshData is the JSON-serializable mesh format of a preview.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of running one script.
type EvalResult struct {
	Scene    *scene.Scene    `json:"-"`
	SCAD     string          `json:"scad"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether the script produced a usable scene.
func (r EvalResult) OK() bool { return len(r.Errors) == 0 }

// NewApp creates a new App with an engine and the sdfx kernel configured
// from cfg.
func NewApp(cfg Config, logger *log.Logger) *App {
	return &App{
		engine: engine.NewEngine(engine.WithTimeout(cfg.Timeout), engine.WithDefaults(cfg.Defaults)),
		kernel: sdfx.New(sdfx.WithCells(cfg.MeshCells)),
		log:    logger,
	}
}

// Evaluate takes script source and returns the rendered OpenSCAD text,
// errors and warnings. It never tessellates.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the result format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Check the scene as a whole.
	for _, v := range scene.Validate(s) {
		data := EvalErrorData{Message: v.Error()}
		if v.Severity == scene.SeverityError {
			result.Errors = append(result.Errors, data)
		} else {
			result.Warnings = append(result.Warnings, data)
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Scene = s
	result.SCAD = s.Render()
	return result
}

// Preview evaluates source and tessellates every 3D root into a mesh.
func (a *App) Preview(source string) EvalResult {
	result := a.Evaluate(source)
	if !result.OK() {
		return result
	}

	meshes, err := tessellate.TessellateScene(result.Scene, a.kernel)
	if err != nil {
		a.log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	for i, m := range meshes {
		color := colorPalette[i%len(colorPalette)]
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    color,
		})
	}
	return result
}
