package content

const validCourseJSON = `{
  "id": "es-basics",
  "title": "Spanish Basics",
  "version": "v1.2.0",
  "units": [
    {
      "id": "u1",
      "title": "Greetings",
      "levels": [
        {
          "id": "u1-l1",
          "title": "Hello",
          "exercises": [
            {"id": "e1", "kind": "translate_to_target", "prompt": "Hello", "correct_answer": "Hola"},
            {"id": "e2", "kind": "multiple_choice", "prompt": "Goodbye?", "options": ["Adiós", "Gracias"], "correct_option_index": 0}
          ]
        },
        {
          "id": "u1-l2",
          "title": "Tired",
          "exercises": [
            {"id": "e3", "kind": "translate_to_target", "prompt": "I am tired", "correct_answer": "Estoy cansado", "gender_variant": "variant_a"},
            {"id": "e4", "kind": "translate_to_target", "prompt": "I am tired", "correct_answer": "Estoy cansada", "gender_variant": "variant_b"}
          ]
        }
      ]
    }
  ]
}`
