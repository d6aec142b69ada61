// Package classifier scores serialized question trees and arbitrates among
// a pool of binary one-vs-all models.
package classifier

// Classifier scores a serialized instance. Higher confidence means the
// instance is more likely to belong to the classifier's category.
// Implementations must be stateless across calls and safe for concurrent
// use once loaded.
type Classifier interface {
	Classify(instance string) float64
}

// Factory builds a Classifier from a model artifact. A failure must be
// returned as an error; a nil or no-op classifier is never a valid result.
type Factory interface {
	CreateClassifier(modelPath string) (Classifier, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(modelPath string) (Classifier, error)

func (f FactoryFunc) CreateClassifier(modelPath string) (Classifier, error) {
	return f(modelPath)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(instance string) float64

func (f ClassifierFunc) Classify(instance string) float64 {
	return f(instance)
}

// Score is one model's confidence for an instance.
type Score struct {
	ID         string  `json:"id"`
	Confidence float64 `json:"confidence"`
}

// Decision is the outcome of a one-vs-all arbitration.
type Decision struct {
	ID         string
	Confidence float64
	Scores     []Score
}
