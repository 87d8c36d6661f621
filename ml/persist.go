package ml

import (
	"encoding/gob"
	"log"
	"os"

	torch "github.com/wangkuiyi/gotorch"
)

// SaveModel writes net's parameters to modelFn as a gob-encoded state dict.
func SaveModel(net *SonarDNN, modelFn string) {
	log.Println("Saving model to", modelFn)
	f, e := os.Create(modelFn)
	if e != nil {
		log.Fatalf("Cannot create file to save model: %v", e)
	}
	defer f.Close()

	d := torch.NewDevice("cpu")
	net.To(d)
	if e := gob.NewEncoder(f).Encode(net.StateDict()); e != nil {
		log.Fatal(e)
	}
}

// LoadModel reads a state dict written by SaveModel into a fresh network on
// the CPU device.
func LoadModel(modelFn string) *SonarDNN {
	f, e := os.Open(modelFn)
	if e != nil {
		log.Fatal(e)
	}
	defer f.Close()

	states := make(map[string]torch.Tensor)
	if e := gob.NewDecoder(f).Decode(&states); e != nil {
		log.Fatal(e)
	}

	net := MakeSonarDNN(torch.NewDevice("cpu"))
	net.SetStateDict(states)
	return net
}

// Predict scores a single sonar return, returning the class label (0 rock,
// 1 mine) and the raw probability.
func Predict(net *SonarDNN, features []float32) (label, prob float32) {
	net.Train(false)
	defer net.Train(true)

	prob = net.Forward(torch.NewTensor([][]float32{features})).Item().(float32)
	return thresholdLabel(prob), prob
}
