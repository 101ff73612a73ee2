package anonymize

// firstNames and surnames are the alias pools. Order matters: the hash
// of a real name indexes directly into them, so reordering would change
// every generated alias.
var firstNames = []string{
	"Aaron", "Abigail", "Adam", "Adrian", "Aiden", "Alex", "Alice", "Allison",
	"Amanda", "Amber", "Amy", "Andrea", "Andrew", "Angela", "Anna", "Anthony",
	"Ashley", "Austin", "Barbara", "Benjamin", "Beth", "Brandon", "Brenda",
	"Brian", "Brittany", "Bruce", "Bryan", "Caleb", "Cameron", "Carl", "Carlos",
	"Carol", "Caroline", "Catherine", "Charles", "Charlotte", "Chelsea", "Chris",
	"Christina", "Christine", "Christopher", "Cindy", "Claire", "Clara", "Cody",
	"Colin", "Connor", "Craig", "Crystal", "Cynthia", "Dale", "Daniel", "Danielle",
	"Darren", "David", "Dawn", "Deborah", "Denise", "Dennis", "Derek", "Diana",
	"Diane", "Donald", "Donna", "Dorothy", "Douglas", "Dylan", "Edward", "Eileen",
	"Eleanor", "Elizabeth", "Ellen", "Emily", "Emma", "Eric", "Erica", "Erin",
	"Ethan", "Eugene", "Eva", "Evan", "Evelyn", "Frances", "Francis", "Frank",
	"Gabriel", "Gary", "George", "Gerald", "Gloria", "Grace", "Gregory", "Hannah",
	"Harold", "Harry", "Heather", "Helen", "Henry", "Holly", "Howard", "Ian",
	"Isaac", "Isabella", "Jack", "Jacob", "Jacqueline", "Jake", "James", "Jamie",
	"Jane", "Janet", "Janice", "Jason", "Jean", "Jeffrey", "Jennifer", "Jeremy",
	"Jerry", "Jesse", "Jessica", "Jill", "Joan", "Joe", "Joel", "John", "Jonathan",
	"Jordan", "Jose", "Joseph", "Joshua", "Joyce", "Juan", "Judith", "Julia",
	"Julie", "Justin", "Karen", "Katherine", "Kathleen", "Kathryn", "Katie",
	"Keith", "Kelly", "Kenneth", "Kevin", "Kim", "Kimberly", "Kyle", "Larry",
	"Laura", "Lauren", "Lawrence", "Leah", "Leonard", "Leslie", "Lillian", "Linda",
	"Lindsay", "Lisa", "Logan", "Lori", "Louis", "Lucas", "Lucy", "Luke", "Lynn",
	"Madison", "Margaret", "Maria", "Marie", "Marilyn", "Mark", "Martha", "Martin",
	"Mary", "Mason", "Matthew", "Megan", "Melanie", "Melissa", "Michael", "Michelle",
	"Mike", "Mildred", "Monica", "Nancy", "Natalie", "Nathan", "Nicholas", "Nicole",
	"Noah", "Norma", "Oliver", "Olivia", "Oscar", "Pamela", "Patricia", "Patrick",
	"Paul", "Paula", "Peggy", "Peter", "Philip", "Rachel", "Ralph", "Randy",
	"Raymond", "Rebecca", "Regina", "Richard", "Robert", "Robin", "Roger", "Ronald",
	"Rose", "Roy", "Russell", "Ruth", "Ryan", "Samantha", "Samuel", "Sandra",
	"Sara", "Sarah", "Scott", "Sean", "Sharon", "Shawn", "Sheila", "Shirley",
	"Sophia", "Stephanie", "Stephen", "Steve", "Steven", "Susan", "Tammy", "Teresa",
	"Terry", "Theresa", "Thomas", "Tiffany", "Timothy", "Tina", "Todd", "Tom",
	"Tony", "Tracy", "Travis", "Tyler", "Valerie", "Vanessa", "Victor", "Victoria",
	"Vincent", "Virginia", "Walter", "Wanda", "Wayne", "Wendy", "William", "Willie",
	"Zachary",
}

var surnames = []string{
	"Adams", "Allen", "Anderson", "Bailey", "Baker", "Barnes", "Bell", "Bennett",
	"Brooks", "Brown", "Bryant", "Butler", "Campbell", "Carter", "Clark", "Coleman",
	"Collins", "Cook", "Cooper", "Cox", "Cruz", "Davis", "Diaz", "Edwards", "Evans",
	"Fisher", "Flores", "Ford", "Foster", "Garcia", "Gibson", "Gomez", "Gonzalez",
	"Gordon", "Graham", "Gray", "Green", "Griffin", "Hall", "Hamilton", "Harris",
	"Harrison", "Hayes", "Henderson", "Hernandez", "Hill", "Holmes", "Howard",
	"Hughes", "Hunt", "Jackson", "James", "Jenkins", "Johnson", "Jones", "Jordan",
	"Kelly", "Kennedy", "Kim", "King", "Lee", "Lewis", "Long", "Lopez", "Marshall",
	"Martin", "Martinez", "Mason", "Matthews", "Mcdonald", "Miller", "Mitchell",
	"Moore", "Morales", "Morgan", "Morris", "Murphy", "Murray", "Nelson", "Nguyen",
	"Ortiz", "Owens", "Parker", "Patterson", "Perez", "Perry", "Peterson", "Phillips",
	"Powell", "Price", "Ramirez", "Reed", "Reyes", "Reynolds", "Richardson", "Rivera",
	"Roberts", "Robinson", "Rodriguez", "Rogers", "Ross", "Russell", "Sanchez",
	"Sanders", "Scott", "Simmons", "Smith", "Stewart", "Sullivan", "Taylor", "Thomas",
	"Thompson", "Torres", "Turner", "Walker", "Wallace", "Ward", "Washington",
	"Watson", "West", "White", "Williams", "Wilson", "Wood", "Wright", "Young",
}
