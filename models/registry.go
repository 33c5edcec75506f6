// Package models - registry for models.
package models

import (
	"fmt"

	"github.com/nvr-ai/go-facedet/models/model"
	"github.com/nvr-ai/go-facedet/models/scrfd"
)

// NewModel creates a new detection model instance based on the specified model name.
//
// Arguments:
//   - args: Configuration parameters specifying the model name and location.
//
// Returns:
//   - model.Model: A configured model instance implementing the Model interface.
//   - error: An error if the model name is unsupported or the arguments are invalid.
//
// Example:
//
//	m, err := models.NewModel(model.NewModelArgs{
//	    Name: model.ModelNameSCRFD,
//	    Path: "det_10g.onnx",
//	})
//	if err != nil {
//	    log.Fatalf("failed to create model: %v", err)
//	}
func NewModel(args model.NewModelArgs) (model.Model, error) {
	switch args.Name {
	case model.ModelNameSCRFD, "":
		m, err := scrfd.NewModel(args)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model name: %s", args.Name)
	}
}
