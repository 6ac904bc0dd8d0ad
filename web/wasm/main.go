//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-viz/viz/pipeline"
	"github.com/cwbudde/algo-viz/viz/profile"
)

var (
	pipe  *pipeline.Pipeline
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("init", export(func(args []js.Value) any {
		name := profile.DefaultProfile
		if len(args) > 0 {
			name = args[0].String()
		}

		var overrides profile.Params
		if len(args) > 1 && args[1].Type() == js.TypeObject {
			overrides = readOverrides(args[1])
		}

		cfg, err := profile.Resolve(name, overrides)
		if err != nil {
			return err.Error()
		}

		p, err := pipeline.New(cfg)
		if err != nil {
			return err.Error()
		}

		pipe = p

		return js.Null()
	}))

	api.Set("step", export(func(args []js.Value) any {
		if pipe == nil || len(args) < 2 {
			return js.Null()
		}

		// args[0] is a Float32Array of interleaved re/im bin pairs.
		arr := args[0]
		bins := make([]complex128, arr.Length()/2)
		for i := range bins {
			bins[i] = complex(arr.Index(2*i).Float(), arr.Index(2*i+1).Float())
		}

		params, err := pipe.Step(bins, args[1].Float())
		if err != nil {
			return err.Error()
		}

		return paramsObject(params)
	}))

	api.Set("stepMagnitudes", export(func(args []js.Value) any {
		if pipe == nil || len(args) < 2 {
			return js.Null()
		}

		arr := args[0]
		mags := make([]float64, arr.Length())
		for i := range mags {
			mags[i] = arr.Index(i).Float()
		}

		params, err := pipe.StepMagnitudes(mags, args[1].Float())
		if err != nil {
			return err.Error()
		}

		return paramsObject(params)
	}))

	api.Set("state", export(func(_ []js.Value) any {
		if pipe == nil {
			return js.Null()
		}

		s := pipe.State()
		obj := js.Global().Get("Object").New()
		obj.Set("bass", s.Bass)
		obj.Set("mid", s.Mid)
		obj.Set("high", s.High)
		obj.Set("rotation", s.Rotation)
		obj.Set("frame", s.FrameIndex)
		obj.Set("inverting", s.Inverting)

		return obj
	}))

	api.Set("reset", export(func(_ []js.Value) any {
		if pipe != nil {
			pipe.Reset()
		}

		return js.Null()
	}))

	api.Set("profiles", export(func(_ []js.Value) any {
		names := profile.Names()
		arr := js.Global().Get("Array").New(len(names))
		for i, n := range names {
			arr.SetIndex(i, n)
		}

		return arr
	}))

	js.Global().Set("AlgoViz", api)
	select {}
}

func readOverrides(obj js.Value) profile.Params {
	keys := js.Global().Get("Object").Call("keys", obj)
	params := profile.Params{}

	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		v := obj.Get(key)

		switch v.Type() {
		case js.TypeBoolean:
			params[key] = v.Bool()
		case js.TypeNumber:
			params[key] = v.Float()
		case js.TypeString:
			params[key] = v.String()
		}
	}

	return params
}

func paramsObject(p pipeline.RenderParameters) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("scale", p.Scale)
	obj.Set("rotationDelta", p.RotationDelta)
	obj.Set("distortionAmount", p.DistortionAmount)
	obj.Set("distortionThreshold", p.DistortionThreshold)
	obj.Set("trailDecay", p.TrailDecay)
	obj.Set("invert", p.Invert)

	return obj
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
