// Command detect runs a YOLO ONNX model against one image or a directory
// of images, prints the detections, and optionally writes annotated copies.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/go-detect/classes"
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/inference"
	"github.com/nvr-ai/go-detect/models"
	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/yolo"
	"github.com/nvr-ai/go-detect/render"
	"github.com/nvr-ai/go-detect/util"
)

const (
	// DefaultInputSize is the pixel size most exported YOLO models consume.
	DefaultInputSize = 640
	// DefaultNumAnchors is the anchor count for a 640x640 YOLOv8/v9 export.
	DefaultNumAnchors = 8400
)

func main() {
	var (
		modelPath    string
		modelName    string
		classesPath  string
		imagePath    string
		dirPath      string
		outputPath   string
		inputSize    int
		numAnchors   int
		channelMajor bool
		confidence   float64
		score        float64
		iou          float64
	)
	flag.StringVar(&modelPath, "model", "", "Path to the ONNX model file (required)")
	flag.StringVar(&modelName, "name", "yolov8", "Model name: yolov8 or yolov9")
	flag.StringVar(&classesPath, "classes", "", "Path to class names: metadata .yaml or plain .txt (required)")
	flag.StringVar(&imagePath, "image", "", "Path to a single input image")
	flag.StringVar(&dirPath, "dir", "", "Directory of input images, processed in name order")
	flag.StringVar(&outputPath, "output", "", "Where to write annotated output: a file for -image, a directory for -dir")
	flag.IntVar(&inputSize, "input-size", DefaultInputSize, "Model input size in pixels (square)")
	flag.IntVar(&numAnchors, "anchors", DefaultNumAnchors, "Anchor count of the model output")
	flag.BoolVar(&channelMajor, "channel-major", true, "Output tensor is (fields, anchors) rather than (anchors, fields)")
	flag.Float64Var(&confidence, "confidence", float64(yolo.DefaultConfidenceThreshold), "Per-anchor confidence threshold")
	flag.Float64Var(&score, "score", float64(yolo.DefaultScoreThreshold), "Suppression score threshold")
	flag.Float64Var(&iou, "iou", float64(yolo.DefaultIoUThreshold), "Suppression IoU threshold")
	flag.Parse()

	if modelPath == "" || classesPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if (imagePath == "") == (dirPath == "") {
		log.Fatal("exactly one of -image or -dir must be given")
	}

	table, err := loadClasses(classesPath)
	if err != nil {
		log.Fatalf("loading classes: %v", err)
	}

	m, err := models.NewModel(model.NewModelArgs{
		Name:                model.Name(modelName),
		Path:                modelPath,
		Input:               images.Size{Width: inputSize, Height: inputSize},
		NumAnchors:          numAnchors,
		NumClasses:          table.Len(),
		ChannelMajor:        channelMajor,
		ClassTable:          table,
		ConfidenceThreshold: float32(confidence),
		ScoreThreshold:      float32(score),
		IoUThreshold:        float32(iou),
	})
	if err != nil {
		log.Fatalf("creating model: %v", err)
	}

	detector, err := inference.NewDetector(m)
	if err != nil {
		log.Fatalf("creating detector: %v", err)
	}
	defer detector.Close()

	ctx := context.Background()
	if imagePath != "" {
		if err := processImage(ctx, detector, imagePath, outputPath); err != nil {
			log.Fatalf("%s: %v", imagePath, err)
		}
		return
	}

	paths, err := util.ListImageFiles(dirPath)
	if err != nil {
		log.Fatalf("listing %s: %v", dirPath, err)
	}
	for _, path := range paths {
		out := ""
		if outputPath != "" {
			out = filepath.Join(outputPath, filepath.Base(path))
		}
		if err := processImage(ctx, detector, path, out); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
	fmt.Print(detector.Stats())
}

// loadClasses reads a class table from either an exported metadata.yaml or
// a plain one-name-per-line text file, chosen by extension.
func loadClasses(path string) (*classes.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return classes.LoadMetadata(path)
	default:
		return classes.LoadFile(path)
	}
}

// processImage detects on one image, prints the results, and writes an
// annotated copy when outputPath is set.
func processImage(ctx context.Context, detector *inference.Detector, path, outputPath string) error {
	img, err := util.LoadImage(path)
	if err != nil {
		return err
	}

	detections, err := detector.Detect(ctx, img)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d detections\n", path, len(detections))
	for _, det := range detections {
		fmt.Printf("  %s\n", det.String())
	}

	if outputPath == "" {
		return nil
	}
	annotated := util.ToRGBA(img)
	render.DrawDetections(annotated, detections, render.DefaultOptions())
	return util.SaveImage(outputPath, annotated)
}
