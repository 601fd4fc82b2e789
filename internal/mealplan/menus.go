package mealplan

// pool is one alternative weekly menu: candidate phrases per meal slot.
type pool struct {
	breakfast []string
	lunch     []string
	snack     []string
	dinner    []string
}

// protein picks the vegetarian phrase when veg is set.
func protein(veg bool, nonVeg, vegPhrase string) string {
	if veg {
		return vegPhrase
	}
	return nonVeg
}

// dairy picks the dairy-free phrase for vegans.
func dairy(vegan bool, dairyPhrase, dairyFree string) string {
	if vegan {
		return dairyFree
	}
	return dairyPhrase
}

// menus builds every group's pools with the substitutions for the
// preference already applied.
func menus(pref Preference) map[Group][]pool {
	veg := pref.IsVegetarian()
	vegan := pref == Vegan

	return map[Group][]pool{
		GroupDiabetes: {
			{
				breakfast: []string{
					"Vegetable oats upma with " + dairy(vegan, "a glass of low-fat milk", "unsweetened almond milk"),
					protein(veg, "Boiled eggs with whole-wheat toast", "Moong dal chilla with mint chutney"),
					"Ragi porridge (no sugar) with " + dairy(vegan, "skimmed milk", "soy milk"),
					"Besan chilla with tomato chutney",
					dairy(vegan, "Greek yogurt with chia seeds", "Soy yogurt with chia seeds"),
				},
				lunch: []string{
					"Brown rice, " + protein(veg, "grilled chicken", "rajma curry") + " and cucumber salad",
					"Multigrain roti with " + protein(veg, "fish curry", "chana masala") + " and sautéed greens",
					"Quinoa bowl with " + protein(veg, "turkey strips", "chickpeas") + " and roasted vegetables",
					"Millet khichdi with " + dairy(vegan, "cucumber raita", "cucumber salad"),
				},
				snack: []string{
					"A handful of roasted chana",
					"Apple slices with peanut butter",
					dairy(vegan, "Unsweetened buttermilk", "Coconut water"),
					"Sprouts salad",
				},
				dinner: []string{
					protein(veg, "Grilled fish with steamed broccoli", "Tofu stir-fry with broccoli"),
					"Vegetable soup with " + protein(veg, "shredded chicken", dairy(vegan, "paneer cubes", "tofu cubes")),
					"Two multigrain rotis with " + protein(veg, "chicken curry", "palak tofu"),
					"Lentil soup with sautéed spinach",
					"Cauliflower rice with " + protein(veg, "egg bhurji", "tofu bhurji"),
				},
			},
			{
				breakfast: []string{
					"Steel-cut oats with cinnamon and " + dairy(vegan, "skimmed milk", "soy milk"),
					protein(veg, "Spinach omelette with multigrain toast", "Tofu scramble with multigrain toast"),
					"Vegetable poha with peanuts",
					"Idli with sambar",
				},
				lunch: []string{
					"Barley salad with " + protein(veg, "grilled salmon", "grilled tofu"),
					"Jowar roti with mixed dal and bhindi",
					"Brown rice pulao with " + dairy(vegan, "curd", "tomato salad"),
				},
				snack: []string{
					"Roasted makhana",
					"Carrot and cucumber sticks with hummus",
					"A small handful of walnuts and almonds",
				},
				dinner: []string{
					protein(veg, "Baked chicken breast with sautéed vegetables", "Soya chunk curry with sautéed vegetables"),
					"Moong dal with two phulkas and salad",
					protein(veg, "Fish tikka with mint chutney and salad", "Chana tikki with mint chutney and salad"),
					"Vegetable daliya",
				},
			},
		},
		GroupCholesterol: {
			{
				breakfast: []string{
					"Oatmeal with berries and flaxseed",
					dairy(vegan, "Low-fat yogurt with fruit", "Soy yogurt with fruit"),
					"Whole-grain toast with avocado",
					"Vegetable upma made with olive oil",
				},
				lunch: []string{
					"Barley and vegetable soup with " + protein(veg, "grilled chicken", "white beans"),
					"Quinoa salad with " + protein(veg, "tuna", "chickpeas") + " and olive oil dressing",
					"Brown rice with dal and steamed vegetables",
				},
				snack: []string{
					"A small handful of almonds",
					"Fresh fruit bowl",
					"Roasted chickpeas",
					dairy(vegan, "Low-fat buttermilk", "Green tea"),
				},
				dinner: []string{
					protein(veg, "Grilled salmon with steamed vegetables", "Lentil stew with steamed vegetables"),
					"Whole-wheat pasta with tomato and spinach",
					protein(veg, "Baked fish with quinoa", "Baked tofu with quinoa"),
					"Mixed vegetable curry with two phulkas",
				},
			},
			{
				breakfast: []string{
					"Multigrain dosa with sambar",
					"Chia pudding with " + dairy(vegan, "skimmed milk", "almond milk"),
					protein(veg, "Egg-white omelette with vegetables", "Besan chilla with vegetables"),
					"Apple and oat smoothie",
				},
				lunch: []string{
					"Millet roti with " + protein(veg, "chicken stew", "mixed bean stew"),
					"Vegetable barley khichdi",
					"Whole-wheat wrap with " + protein(veg, "grilled turkey", "grilled tofu") + " and greens",
				},
				snack: []string{
					"Orange slices",
					"Roasted makhana",
					"A small handful of walnuts",
				},
				dinner: []string{
					"Stir-fried vegetables with " + protein(veg, "prawns", "tofu") + " and brown rice",
					"Lentil soup with a side salad",
					protein(veg, "Grilled mackerel with greens", "Rajma with greens"),
				},
			},
		},
		GroupBoth: {
			{
				breakfast: []string{
					"Steel-cut oats with flaxseed and " + dairy(vegan, "skimmed milk", "soy milk"),
					"Moong dal chilla with mint chutney",
					protein(veg, "Egg-white omelette with whole-grain toast", "Tofu scramble with whole-grain toast"),
					"Vegetable dalia",
				},
				lunch: []string{
					"Brown rice with " + protein(veg, "grilled fish", "dal") + " and steamed vegetables",
					"Barley salad with " + protein(veg, "chicken", "chickpeas") + " and olive oil dressing",
					"Multigrain roti with mixed vegetable curry",
				},
				snack: []string{
					"Cucumber and carrot sticks",
					"A few walnuts",
					dairy(vegan, "Unsweetened low-fat yogurt", "Unsweetened soy yogurt"),
					"Roasted chana",
				},
				dinner: []string{
					protein(veg, "Grilled salmon with sautéed spinach", "Grilled tofu with sautéed spinach"),
					"Lentil soup with steamed broccoli",
					"Quinoa with " + protein(veg, "turkey and vegetables", "mixed vegetables"),
					"Vegetable stew with two phulkas",
				},
			},
		},
		GroupGeneral: {
			{
				breakfast: []string{
					"Poha with vegetables and peanuts",
					protein(veg, "Scrambled eggs with toast", dairy(vegan, "Paneer bhurji with toast", "Tofu bhurji with toast")),
					"Fruit smoothie with " + dairy(vegan, "milk", "oat milk"),
					"Idli with coconut chutney",
				},
				lunch: []string{
					"Rice, dal and seasonal vegetables",
					"Roti with " + protein(veg, "chicken curry", "chole") + " and salad",
					"Vegetable pulao with " + dairy(vegan, "raita", "salad"),
				},
				snack: []string{
					"Seasonal fruit",
					"Roasted peanuts",
					dairy(vegan, "A glass of buttermilk", "A glass of lemon water"),
					"Sprouts chaat",
				},
				dinner: []string{
					"Roti with " + protein(veg, "fish curry", "mixed vegetable curry"),
					"Vegetable khichdi",
					protein(veg, "Grilled chicken with salad", "Grilled tofu with salad"),
					"Dal, rice and stir-fried greens",
				},
			},
		},
	}
}
