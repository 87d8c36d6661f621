package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
)

// Each sonar return is 60 energy readings across frequency bands.
const featureDim = 60

// SonarDNN scores a sonar return as mine (1) or rock (0).
type SonarDNN struct {
	nn.Module
	FC1, FC2, FC3 *nn.LinearModule
}

// MakeSonarDNN builds the network and moves it to device.
func MakeSonarDNN(device torch.Device) *SonarDNN {
	r := &SonarDNN{
		FC1: nn.Linear(featureDim, 60, true),
		FC2: nn.Linear(60, 30, true),
		FC3: nn.Linear(30, 1, true),
	}
	r.Init(r)
	r.To(device)
	return r
}

// Forward maps a [b, 60] feature batch to a [b, 1] probability batch.
func (n *SonarDNN) Forward(x torch.Tensor) torch.Tensor {
	x = n.FC1.Forward(x).Relu()
	x = n.FC2.Forward(x).Relu()
	return n.FC3.Forward(x).Sigmoid()
}
