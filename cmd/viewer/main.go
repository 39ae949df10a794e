package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/host"
	"github.com/Carmen-Shannon/oxy-viewer/engine/platform/desktop"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/wgpubackend"
	"github.com/Carmen-Shannon/oxy-viewer/ui/web"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	docPath := flag.String("document", "index.html", "host document containing the canvas and mount elements")
	canvasID := flag.String("canvas", host.DefaultCanvasID, "ID of the <canvas> element")
	mountID := flag.String("mount", host.DefaultMountID, "ID of the UI mount element")
	addr := flag.String("addr", "", "control panel listen address (overrides data-addr)")
	vsync := flag.Bool("vsync", true, "pace frames to the display refresh")
	msaa := flag.Int("msaa", 4, "MSAA sample count: 1, 4 or 8")
	profile := flag.Bool("profile", false, "log FPS and memory stats every second")
	coalesce := flag.Bool("coalesce-resize", false, "apply only the latest resize at the start of each frame")
	software := flag.Bool("software", false, "force the software fallback adapter")
	flag.Parse()

	doc, err := document.Load(*docPath)
	if err != nil {
		log.Fatalf("load host document: %v", err)
	}

	presentMode := renderer.PresentModeVSync
	if !*vsync {
		presentMode = renderer.PresentModeUncapped
	}

	var uiOpts []web.ServerOption
	if *addr != "" {
		uiOpts = append(uiOpts, web.WithAddr(*addr))
	}

	h, err := host.NewRenderHost(
		host.WithDocument(doc),
		host.WithCanvasID(*canvasID),
		host.WithMountID(*mountID),
		host.WithPlatform(desktop.New(desktop.WithBackendOptions(
			wgpubackend.WithMSAA(msaaCount(*msaa)),
			wgpubackend.WithForceSoftwareRenderer(*software),
		))),
		host.WithUI(web.New(uiOpts...)),
		host.WithPresentMode(presentMode),
		host.WithProfiling(*profile),
		host.WithResizeCoalescing(*coalesce),
	)
	if err != nil {
		log.Printf("start viewer: %v", err)
		os.Exit(1)
	}
	defer h.Close()

	if err := h.Run(); err != nil {
		log.Printf("run viewer: %v", err)
	}
}

func msaaCount(n int) renderer.MSAASampleCount {
	switch n {
	case 1:
		return renderer.MSAAOff
	case 8:
		return renderer.MSAA8x
	default:
		return renderer.MSAA4x
	}
}
