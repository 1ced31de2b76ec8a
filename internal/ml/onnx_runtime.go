package ml

import (
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"krishimitra/pkg/errors"
)

var initOnce sync.Once

// InitEnvironment initializes the ONNX runtime environment (once per process).
// An optional shared library path overrides the default onnxruntime lookup.
func InitEnvironment(sharedLibPath string) error {
	var err error
	initOnce.Do(func() {
		if sharedLibPath != "" {
			onnxruntime.SetSharedLibraryPath(sharedLibPath)
		}
		err = onnxruntime.InitializeEnvironment()
	})
	return errors.Wrap(err, "failed to initialize ONNX runtime")
}

// DestroyEnvironment tears down the ONNX runtime environment.
func DestroyEnvironment() {
	onnxruntime.DestroyEnvironment()
}

// Classifier wraps an ONNX session for a softmax multi-class model.
// Input: "input" (float32 feature tensor), output: "output" (float32
// probability vector over all classes).
type Classifier struct {
	session    *onnxruntime.DynamicAdvancedSession
	inputShape []int64
	numClasses int
}

// LoadClassifier loads a softmax classifier from an ONNX file.
// inputShape is the full batch-of-one input shape (e.g. [1, 9] for a
// tabular model, [1, 128, 128, 3] for an image model).
func LoadClassifier(modelPath string, inputShape []int64, numClasses int) (*Classifier, error) {
	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session options")
	}
	defer options.Destroy()

	session, err := onnxruntime.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"}, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ONNX model")
	}

	return &Classifier{
		session:    session,
		inputShape: inputShape,
		numClasses: numClasses,
	}, nil
}

// Predict runs inference and returns the probability vector over all classes.
// Tensors are created per call, so concurrent predictions are safe.
func (m *Classifier) Predict(features []float32) ([]float32, error) {
	if m.session == nil {
		return nil, errors.New("model session is nil")
	}

	inputTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(m.inputShape...), features)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create input tensor")
	}
	defer inputTensor.Destroy()

	probs := make([]float32, m.numClasses)
	outputTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1, int64(m.numClasses)), probs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create output tensor")
	}
	defer outputTensor.Destroy()

	err = m.session.Run([]onnxruntime.Value{inputTensor}, []onnxruntime.Value{outputTensor})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInferenceFailed, err.Error())
	}

	out := make([]float32, m.numClasses)
	copy(out, probs)
	return out, nil
}

// Destroy cleans up the ONNX session
func (m *Classifier) Destroy() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}

// BinaryClassifier wraps an ONNX session for a scikit-learn style binary
// model exported with two outputs: "output" (int64 predicted class) and
// "probabilities" (float64 pair over the two classes).
type BinaryClassifier struct {
	session     *onnxruntime.DynamicAdvancedSession
	numFeatures int
}

// LoadBinaryClassifier loads a two-output binary classifier from an ONNX file.
func LoadBinaryClassifier(modelPath string, numFeatures int) (*BinaryClassifier, error) {
	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session options")
	}
	defer options.Destroy()

	session, err := onnxruntime.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"output", "probabilities"}, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ONNX model")
	}

	return &BinaryClassifier{
		session:     session,
		numFeatures: numFeatures,
	}, nil
}

// Predict runs inference and returns the predicted class (0 or 1) together
// with the two-element probability pair.
func (m *BinaryClassifier) Predict(features []float64) (int, []float64, error) {
	if m.session == nil {
		return 0, nil, errors.New("model session is nil")
	}
	if len(features) != m.numFeatures {
		return 0, nil, errors.Newf("expected %d features, got %d", m.numFeatures, len(features))
	}

	inputTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1, int64(m.numFeatures)), features)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create input tensor")
	}
	defer inputTensor.Destroy()

	classOutput := make([]int64, 1)
	classTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1), classOutput)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create class output tensor")
	}
	defer classTensor.Destroy()

	probOutput := make([]float64, 2)
	probTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1, 2), probOutput)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create probabilities output tensor")
	}
	defer probTensor.Destroy()

	err = m.session.Run(
		[]onnxruntime.Value{inputTensor},
		[]onnxruntime.Value{classTensor, probTensor},
	)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrInferenceFailed, err.Error())
	}

	predicted := int(classOutput[0])
	if predicted != 0 && predicted != 1 {
		return 0, nil, errors.Newf("invalid class index: %d", predicted)
	}

	probs := make([]float64, 2)
	copy(probs, probOutput)
	return predicted, probs, nil
}

// Destroy cleans up the ONNX session
func (m *BinaryClassifier) Destroy() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
