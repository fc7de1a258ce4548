package ingredient

import "sort"

// Category 食材分類
type Category string

const (
	CategoryHerbs      Category = "herbs"
	CategorySpices     Category = "spices"
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategoryProteins   Category = "proteins"
	CategoryCondiments Category = "condiments"
	CategoryOther      Category = "other"
)

// entry 標準食材的建置期定義
type entry struct {
	Category Category
	Aliases  []string
}

// canonicalTable 標準食材表，鍵即 canonical key
// 影像辨識輸出的雜訊標籤全部收斂到這組受控詞彙
var canonicalTable = map[string]entry{
	// 蔬菜
	"tomato":      {CategoryVegetables, []string{"tomato", "tomatoes", "cherry tomato", "roma tomato"}},
	"onion":       {CategoryVegetables, []string{"onion", "onions", "red onion", "yellow onion", "scallion", "green onion", "spring onion"}},
	"garlic":      {CategoryVegetables, []string{"garlic", "garlic clove", "garlic bulb", "fresh garlic", "minced garlic"}},
	"potato":      {CategoryVegetables, []string{"potato", "potatoes", "russet potato", "baby potato"}},
	"carrot":      {CategoryVegetables, []string{"carrot", "carrots", "baby carrot"}},
	"lettuce":     {CategoryVegetables, []string{"lettuce", "romaine", "iceberg lettuce", "salad greens"}},
	"cucumber":    {CategoryVegetables, []string{"cucumber", "cucumbers", "english cucumber"}},
	"broccoli":    {CategoryVegetables, []string{"broccoli", "broccoli florets"}},
	"spinach":     {CategoryVegetables, []string{"spinach", "baby spinach", "spinach leaves"}},
	"bell pepper": {CategoryVegetables, []string{"bell pepper", "bell peppers", "red pepper", "green pepper", "yellow pepper", "capsicum"}},
	"mushroom":    {CategoryVegetables, []string{"mushroom", "mushrooms", "button mushroom", "shiitake"}},
	"cabbage":     {CategoryVegetables, []string{"cabbage", "napa cabbage", "red cabbage"}},
	"corn":        {CategoryVegetables, []string{"corn", "sweet corn", "corn cob", "corn kernels"}},
	"celery":      {CategoryVegetables, []string{"celery", "celery stalk"}},
	"zucchini":    {CategoryVegetables, []string{"zucchini", "courgette"}},
	"eggplant":    {CategoryVegetables, []string{"eggplant", "aubergine"}},

	// 水果
	"apple":      {CategoryFruits, []string{"apple", "apples", "green apple", "red apple"}},
	"banana":     {CategoryFruits, []string{"banana", "bananas"}},
	"lemon":      {CategoryFruits, []string{"lemon", "lemons", "lemon wedge"}},
	"lime":       {CategoryFruits, []string{"lime", "limes"}},
	"orange":     {CategoryFruits, []string{"orange", "oranges", "navel orange"}},
	"strawberry": {CategoryFruits, []string{"strawberry", "strawberries"}},
	"avocado":    {CategoryFruits, []string{"avocado", "avocados"}},
	"grape":      {CategoryFruits, []string{"grape", "grapes"}},

	// 穀物
	"rice":      {CategoryGrains, []string{"rice", "white rice", "brown rice", "jasmine rice", "cooked rice"}},
	"pasta":     {CategoryGrains, []string{"pasta", "spaghetti", "penne", "noodle", "noodles"}},
	"bread":     {CategoryGrains, []string{"bread", "loaf", "baguette", "toast", "bread slice"}},
	"flour":     {CategoryGrains, []string{"flour", "all purpose flour", "wheat flour"}},
	"oats":      {CategoryGrains, []string{"oats", "oatmeal", "rolled oats"}},
	"tortilla":  {CategoryGrains, []string{"tortilla", "tortillas", "wrap"}},
	"quinoa":    {CategoryGrains, []string{"quinoa"}},

	// 乳製品
	"milk":    {CategoryDairy, []string{"milk", "whole milk", "skim milk", "milk carton"}},
	"cheese":  {CategoryDairy, []string{"cheese", "cheddar", "mozzarella", "parmesan", "shredded cheese"}},
	"butter":  {CategoryDairy, []string{"butter", "unsalted butter", "salted butter"}},
	"yogurt":  {CategoryDairy, []string{"yogurt", "yoghurt", "greek yogurt"}},
	"cream":   {CategoryDairy, []string{"cream", "heavy cream", "whipping cream", "sour cream"}},

	// 蛋白質
	"egg":     {CategoryProteins, []string{"egg", "eggs", "chicken egg", "egg carton"}},
	"chicken": {CategoryProteins, []string{"chicken", "chicken breast", "chicken thigh", "chicken leg", "poultry"}},
	"beef":    {CategoryProteins, []string{"beef", "ground beef", "steak", "beef steak"}},
	"pork":    {CategoryProteins, []string{"pork", "pork chop", "pork belly"}},
	"bacon":   {CategoryProteins, []string{"bacon", "bacon strips"}},
	"fish":    {CategoryProteins, []string{"fish", "salmon", "tuna", "cod", "fish fillet"}},
	"shrimp":  {CategoryProteins, []string{"shrimp", "prawn", "prawns"}},
	"tofu":    {CategoryProteins, []string{"tofu", "bean curd", "firm tofu"}},
	"ham":     {CategoryProteins, []string{"ham", "sliced ham", "deli ham"}},
	"sausage": {CategoryProteins, []string{"sausage", "sausages", "hot dog"}},
	"beans":   {CategoryProteins, []string{"beans", "black beans", "kidney beans", "chickpea", "chickpeas", "lentils"}},

	// 香草
	"basil":    {CategoryHerbs, []string{"basil", "basil leaves", "fresh basil", "thai basil"}},
	"cilantro": {CategoryHerbs, []string{"cilantro", "coriander", "coriander leaves"}},
	"parsley":  {CategoryHerbs, []string{"parsley", "flat leaf parsley"}},
	"mint":     {CategoryHerbs, []string{"mint", "mint leaves"}},
	"rosemary": {CategoryHerbs, []string{"rosemary"}},
	"thyme":    {CategoryHerbs, []string{"thyme"}},

	// 辛香料
	"ginger":       {CategorySpices, []string{"ginger", "fresh ginger", "ginger root"}},
	"chili":        {CategorySpices, []string{"chili", "chilli", "chili pepper", "jalapeno", "red chili"}},
	"black pepper": {CategorySpices, []string{"black pepper", "peppercorn", "ground pepper"}},
	"cinnamon":     {CategorySpices, []string{"cinnamon", "cinnamon stick"}},
	"paprika":      {CategorySpices, []string{"paprika", "smoked paprika"}},

	// 調味料
	"soy sauce":   {CategoryCondiments, []string{"soy sauce", "soya sauce", "shoyu"}},
	"olive oil":   {CategoryCondiments, []string{"olive oil", "extra virgin olive oil"}},
	"ketchup":     {CategoryCondiments, []string{"ketchup", "tomato ketchup"}},
	"mayonnaise":  {CategoryCondiments, []string{"mayonnaise", "mayo"}},
	"mustard":     {CategoryCondiments, []string{"mustard", "dijon mustard"}},
	"vinegar":     {CategoryCondiments, []string{"vinegar", "rice vinegar", "balsamic vinegar"}},
	"honey":       {CategoryCondiments, []string{"honey", "raw honey"}},
	"salt":        {CategoryCondiments, []string{"salt", "sea salt", "table salt"}},
	"sugar":       {CategoryCondiments, []string{"sugar", "white sugar", "brown sugar"}},
	"salsa":       {CategoryCondiments, []string{"salsa"}},

	// 其他
	"chocolate": {CategoryOther, []string{"chocolate", "dark chocolate", "chocolate bar"}},
	"peanut":    {CategoryOther, []string{"peanut", "peanuts", "peanut butter"}},
	"seaweed":   {CategoryOther, []string{"seaweed", "nori"}},
}

// ignoreList 通用非食材詞彙，命中時直接放棄該偵測
// 必須在任何別名比對之前檢查，避免 "food" 之類的詞被子字串規則吃掉
var ignoreList = map[string]struct{}{
	"food":        {},
	"foods":       {},
	"container":   {},
	"containers":  {},
	"kitchen":     {},
	"refrigerator": {},
	"fridge":      {},
	"shelf":       {},
	"bottle":      {},
	"jar":         {},
	"box":         {},
	"bag":         {},
	"plastic":     {},
	"packaging":   {},
	"label":       {},
	"produce":     {},
	"ingredient":  {},
	"ingredients": {},
	"drink":       {},
	"beverage":    {},
	"tableware":   {},
	"dish":        {},
	"meal":        {},
	"cuisine":     {},
	"recipe":      {},
	"snack":       {},
	"grocery":     {},
}

// aliasRef 別名到標準鍵的反查項目
type aliasRef struct {
	alias string
	key   string
}

var (
	// aliasExact 別名精確比對索引
	aliasExact map[string]string
	// aliasOrdered 依別名排序的反查清單，保證模糊比對結果可重現
	aliasOrdered []aliasRef
)

func init() {
	aliasExact = make(map[string]string)
	for key, e := range canonicalTable {
		for _, alias := range e.Aliases {
			aliasExact[alias] = key
			aliasOrdered = append(aliasOrdered, aliasRef{alias: alias, key: key})
		}
	}
	sort.Slice(aliasOrdered, func(i, j int) bool {
		return aliasOrdered[i].alias < aliasOrdered[j].alias
	})
}

// CategoryOf 查詢標準食材的分類，未知時回傳 other
func CategoryOf(key string) Category {
	if e, ok := canonicalTable[key]; ok {
		return e.Category
	}
	return CategoryOther
}

// Known 檢查是否為標準食材鍵
func Known(key string) bool {
	_, ok := canonicalTable[key]
	return ok
}
