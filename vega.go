package main

import (
	"flag"
	"log"

	"github.com/gibibite/vega/config"
	"github.com/gibibite/vega/scene"
	"github.com/gibibite/vega/utils"
	"github.com/gibibite/vega/wavefront"
	"github.com/gibibite/vega/web"
)

func main() {
	var addr, configPath, webDir, objPath string
	var dumpDrawList bool

	flag.StringVar(&addr, "i", "", "Address of the web server")
	flag.StringVar(&configPath, "config", "", "Path to a yaml config file")
	flag.StringVar(&objPath, "obj", "", "Wavefront obj file to load")
	flag.StringVar(&webDir, "web", "", "Directory with the web interface files")
	flag.BoolVar(&dumpDrawList, "dump", false, "Dump the draw list after loading")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("[config] %v", err)
		}
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if webDir != "" {
		cfg.WebDir = webDir
	}
	if dumpDrawList {
		cfg.DumpDrawList = true
	}
	if objPath != "" {
		cfg.Models = append(cfg.Models, objPath)
	}
	cfg.Models = append(cfg.Models, flag.Args()...)

	s := scene.NewScene()
	for _, model := range cfg.Models {
		if err := wavefront.Load(s, model); err != nil {
			log.Fatalf("[wavefront] %v", err)
		}
	}

	drawList := s.ComputeDrawList()
	aabb := s.ComputeAxisAlignedBoundingBox()
	log.Printf("[scene] %d meshes, %d materials, %d draw records, bounds %v .. %v",
		len(s.GetMeshes()), len(s.GetMaterials()), len(drawList), aabb.Min, aabb.Max)
	if cfg.DumpDrawList {
		utils.LogDump(drawList)
	}

	if err := web.StartServer(cfg.ListenAddr, s, cfg.WebDir); err != nil {
		log.Fatalf("[web] %v", err)
	}
}
