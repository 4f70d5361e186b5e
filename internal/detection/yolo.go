package detection

import (
	"bufio"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// YOLOConfig содержит параметры загрузки модели YOLO
type YOLOConfig struct {
	// ModelPath — путь к весам модели в формате ONNX
	ModelPath string
	// NamesPath — путь к файлу с именами классов, по одному в строке
	NamesPath string
	// InputSize — сторона квадратного входа сети (для yolov8n — 640)
	InputSize int
	// ScoreThreshold — порог класса до NMS
	ScoreThreshold float32
	// NMSThreshold — порог подавления пересекающихся рамок
	NMSThreshold float32
}

// DefaultYOLOConfig возвращает параметры для yolov8n
func DefaultYOLOConfig(modelPath, namesPath string) YOLOConfig {
	return YOLOConfig{
		ModelPath:      modelPath,
		NamesPath:      namesPath,
		InputSize:      640,
		ScoreThreshold: 0.25,
		NMSThreshold:   0.45,
	}
}

// YOLODetector реализует Detector поверх DNN-модуля OpenCV с моделью YOLO.
// Порог ScoreThreshold здесь ниже порога уверенности окна сканирования:
// финальную фильтрацию выполняет Accumulator.
type YOLODetector struct {
	net       gocv.Net
	names     []string
	inputSize int
	score     float32
	nms       float32
}

// NewYOLODetector загружает модель и файл имен классов
func NewYOLODetector(cfg YOLOConfig) (*YOLODetector, error) {
	names, err := loadClassNames(cfg.NamesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load class names: %w", err)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load YOLO model from %s", cfg.ModelPath)
	}

	inputSize := cfg.InputSize
	if inputSize <= 0 {
		inputSize = 640
	}

	return &YOLODetector{
		net:       net,
		names:     names,
		inputSize: inputSize,
		score:     cfg.ScoreThreshold,
		nms:       cfg.NMSThreshold,
	}, nil
}

// Detect прогоняет кадр через сеть и возвращает найденные объекты
func (d *YOLODetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	blob := gocv.BlobFromImage(*frame, 1.0/255.0,
		image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	return d.parseOutput(output, frame.Cols(), frame.Rows())
}

// parseOutput разбирает выход YOLOv8 формы [1, 4+classes, anchors]
func (d *YOLODetector) parseOutput(output gocv.Mat, frameWidth, frameHeight int) ([]Detection, error) {
	rows := output.Size()[1]
	reshaped := output.Reshape(1, rows)
	defer reshaped.Close()

	// Транспонируем в [anchors, 4+classes]: так каждая строка — один кандидат
	transposed := gocv.NewMat()
	defer transposed.Close()
	gocv.Transpose(reshaped, &transposed)

	xScale := float32(frameWidth) / float32(d.inputSize)
	yScale := float32(frameHeight) / float32(d.inputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for row := 0; row < transposed.Rows(); row++ {
		bestScore := float32(0)
		bestClass := -1
		for class := 0; class < len(d.names) && 4+class < transposed.Cols(); class++ {
			score := transposed.GetFloatAt(row, 4+class)
			if score > bestScore {
				bestScore = score
				bestClass = class
			}
		}
		if bestClass < 0 || bestScore < d.score {
			continue
		}

		cx := transposed.GetFloatAt(row, 0)
		cy := transposed.GetFloatAt(row, 1)
		w := transposed.GetFloatAt(row, 2)
		h := transposed.GetFloatAt(row, 3)

		left := int((cx - w/2) * xScale)
		top := int((cy - h/2) * yScale)
		width := int(w * xScale)
		height := int(h * yScale)

		boxes = append(boxes, image.Rect(left, top, left+width, top+height))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, d.score, d.nms)

	detections := make([]Detection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, Detection{
			Label:      d.names[classIDs[idx]],
			Confidence: float64(scores[idx]),
			Box:        boxes[idx],
		})
	}
	return detections, nil
}

// Close освобождает сеть
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

// loadClassNames читает имена классов, по одному в строке
func loadClassNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("class names file %s is empty", path)
	}
	return names, nil
}
