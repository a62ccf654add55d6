package script

import (
	"github.com/d5/tengo/v2"
	"github.com/milk9111/rigidsync/physics"
)

// bodyObject exposes the BodySync action surface to tengo. Render-space
// conventions carry over: y grows downward and angles are in degrees.
func bodyObject(path string, env Env) *tengo.ImmutableMap {
	s := env.Self
	values := map[string]tengo.Object{}

	action := func(name string, arity int, fn func(args []float64)) {
		values[name] = numbers(name, arity, func(args []float64) tengo.Object {
			fn(args)
			return tengo.UndefinedValue
		})
	}
	getter := func(name string, fn func() float64) {
		values[name] = numbers(name, 0, func([]float64) tengo.Object {
			return &tengo.Float{Value: fn()}
		})
	}
	check := func(name string, fn func() bool) {
		values[name] = numbers(name, 0, func([]float64) tengo.Object {
			return boolObject(fn())
		})
	}

	action("set_static", 0, func([]float64) { s.SetStatic() })
	action("set_dynamic", 0, func([]float64) { s.SetDynamic() })
	check("is_static", s.IsStatic)
	check("is_dynamic", s.IsDynamic)
	action("set_fixed_rotation", 0, func([]float64) { s.SetFixedRotation() })
	action("set_free_rotation", 0, func([]float64) { s.SetFreeRotation() })
	check("is_fixed_rotation", s.IsFixedRotation)
	check("is_bullet", s.IsBullet)
	values["set_bullet"] = &tengo.UserFunction{Name: "set_bullet", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		s.SetBullet(!args[0].IsFalsy())
		return tengo.UndefinedValue, nil
	}}

	action("apply_force", 2, func(a []float64) { s.ApplyForce(a[0], a[1]) })
	action("apply_force_polar", 2, func(a []float64) { s.ApplyForcePolar(a[0], a[1]) })
	action("apply_force_toward", 3, func(a []float64) { s.ApplyForceToward(a[0], a[1], a[2]) })
	action("apply_impulse", 2, func(a []float64) { s.ApplyImpulse(a[0], a[1]) })
	action("apply_impulse_polar", 2, func(a []float64) { s.ApplyImpulsePolar(a[0], a[1]) })
	action("apply_impulse_toward", 3, func(a []float64) { s.ApplyImpulseToward(a[0], a[1], a[2]) })
	action("apply_torque", 1, func(a []float64) { s.ApplyTorque(a[0]) })

	action("set_linear_velocity", 2, func(a []float64) { s.SetLinearVelocity(a[0], a[1]) })
	action("set_linear_velocity_x", 1, func(a []float64) { s.SetLinearVelocityX(a[0]) })
	action("set_linear_velocity_y", 1, func(a []float64) { s.SetLinearVelocityY(a[0]) })
	getter("linear_velocity_x", s.LinearVelocityX)
	getter("linear_velocity_y", s.LinearVelocityY)
	getter("linear_velocity", s.LinearVelocity)
	action("set_angular_velocity", 1, func(a []float64) { s.SetAngularVelocity(a[0]) })
	getter("angular_velocity", s.AngularVelocity)
	action("set_linear_damping", 1, func(a []float64) { s.SetLinearDamping(a[0]) })
	getter("linear_damping", s.LinearDamping)
	action("set_angular_damping", 1, func(a []float64) { s.SetAngularDamping(a[0]) })
	getter("angular_damping", s.AngularDamping)
	action("set_gravity", 2, func(a []float64) { s.SetGravity(a[0], a[1]) })
	action("set_polygon_scale_x", 1, func(a []float64) { s.SetPolygonScaleX(a[0]) })
	action("set_polygon_scale_y", 1, func(a []float64) { s.SetPolygonScaleY(a[0]) })
	getter("polygon_scale_x", s.PolygonScaleX)
	getter("polygon_scale_y", s.PolygonScaleY)
	getter("mass", s.Mass)

	values["position"] = numbers("position", 0, func([]float64) tengo.Object {
		x, y := s.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
	})

	action("add_revolute_joint", 2, func(a []float64) { s.AddRevoluteJoint(a[0], a[1]) })
	values["add_revolute_joint_between"] = named("add_revolute_joint_between", 2, env, func(other *physics.BodySync, a []float64) bool {
		return s.AddRevoluteJointBetween(other, a[0], a[1])
	})
	values["add_gear_joint_between"] = named("add_gear_joint_between", 1, env, func(other *physics.BodySync, a []float64) bool {
		return s.AddGearJointBetween(other, a[0])
	})

	values["collision_with"] = &tengo.UserFunction{Name: "collision_with", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if env.Group == nil {
			return tengo.FalseValue, nil
		}
		var handles []physics.Handle
		for _, arg := range args {
			handles = append(handles, env.Group(objectAsString(arg))...)
		}
		return boolObject(s.CollisionWith(handles)), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]any, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		logf(path, "%v", parts)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// numbers wraps fn as a tengo function taking exactly arity numeric
// arguments.
func numbers(name string, arity int, fn func(args []float64) tengo.Object) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		vals, err := floatArgs(args, arity)
		if err != nil {
			return nil, err
		}
		return fn(vals), nil
	}}
}

// named wraps a joint action whose first argument is another body's name.
// An unknown name makes the action report false.
func named(name string, arity int, env Env, fn func(other *physics.BodySync, args []float64) bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != arity+1 {
			return nil, tengo.ErrWrongNumArguments
		}
		vals, err := floatArgs(args[1:], arity)
		if err != nil {
			return nil, err
		}
		if env.Lookup == nil {
			return tengo.FalseValue, nil
		}
		other := env.Lookup(objectAsString(args[0]))
		if other == nil {
			return tengo.FalseValue, nil
		}
		return boolObject(fn(other, vals)), nil
	}}
}

var argNames = []string{"first", "second", "third"}

func floatArgs(args []tengo.Object, arity int) ([]float64, error) {
	if len(args) != arity {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, arity)
	for i, arg := range args {
		v, ok := tengo.ToFloat64(arg)
		if !ok {
			pos := "argument"
			if i < len(argNames) {
				pos = argNames[i]
			}
			return nil, tengo.ErrInvalidArgumentType{Name: pos, Expected: "int/float", Found: arg.TypeName()}
		}
		out[i] = v
	}
	return out, nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
